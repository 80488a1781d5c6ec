// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package messages

import "go.uber.org/zap/zapcore"

// MarshalLogObject lets a Bag be logged as a structured object, e.g.
// logger.Debug("blob upload failed", zap.Object("response", r.BuildVerbose())).
func (b *Bag) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for key, value := range b.All() {
		enc.AddString(key, value)
	}

	return nil
}

var _ zapcore.ObjectMarshaler = (*Bag)(nil)
