package utils

import (
	"go.uber.org/zap"
)

// NewLogger builds a sugared zap logger: human-readable in development,
// JSON in production.
func NewLogger(dev bool) (*zap.SugaredLogger, error) {
	var z *zap.Logger
	var err error
	if dev {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}
