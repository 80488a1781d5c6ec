// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"io"

	azcorelog "github.com/Azure/azure-sdk-for-go/sdk/azcore/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a JSON logger writing to w when debug is set, and a no-op logger otherwise. With
// debug set the azcore pipeline events are forwarded to the logger too.
func newLogger(debug bool, w io.Writer) *zap.Logger {
	if !debug {
		azcorelog.SetListener(nil)
		return zap.NewNop()
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	logger := zap.New(core)

	azcorelog.SetListener(func(event azcorelog.Event, msg string) {
		logger.Debug(msg, zap.String("azcore.event", string(event)))
	})

	return logger
}
