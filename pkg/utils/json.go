package utils

import (
	"bytes"
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson serializa o valor com indentação por tab. []byte é tratado como JSON já serializado.
func PrettyJson(in any) (string, error) {
	buffer, isRaw := in.([]byte)
	if !isRaw {
		var err error
		buffer, err = jsonAPI.Marshal(in)
		if err != nil {
			return "", err
		}
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buffer, "", "\t"); err != nil {
		return "", err
	}

	return out.String(), nil
}
