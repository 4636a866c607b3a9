package logger

import "go.uber.org/zap"

var Log *zap.Logger

// Init builds the process logger. Production config unless LOANPAY_DEBUG
// asks for the human-readable development encoder.
func Init(debug bool) {
	if debug {
		Log = zap.Must(zap.NewDevelopment())
		return
	}
	Log = zap.Must(zap.NewProduction())
}

func Sugar() *zap.SugaredLogger {
	return Log.Sugar()
}
