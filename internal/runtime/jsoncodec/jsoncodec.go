// Package jsoncodec centralises JSON encoding for the obsflow runtime so
// every payload and CLI response goes through the same sonic configuration.
package jsoncodec

import "github.com/bytedance/sonic"

var defaultConfig = sonic.ConfigStd

func Marshal(v any) ([]byte, error) {
	return defaultConfig.Marshal(v)
}

func MarshalString(v any) (string, error) {
	return defaultConfig.MarshalToString(v)
}

func Unmarshal(data []byte, v any) error {
	return defaultConfig.Unmarshal(data, v)
}

func UnmarshalString(data string, v any) error {
	return defaultConfig.UnmarshalFromString(data, v)
}
