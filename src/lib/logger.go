package lib

import "go.uber.org/zap"

var Log *zap.Logger = zap.NewNop()

// InitLogger replaces the global logger. Debug mode uses the
// human-readable development encoder.
func InitLogger(debug bool) {
	var err error
	if debug {
		Log, err = zap.NewDevelopment()
	} else {
		Log, err = zap.NewProduction()
	}
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
}
