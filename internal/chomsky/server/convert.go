package server

import (
	"encoding/json"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	"google.golang.org/protobuf/types/known/structpb"
)

// toStruct converts any JSON-serializable value into a Struct
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, mdwerror.Wrap(err, "encode response").WithCode(mdwerror.CodeInternal)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, mdwerror.Wrap(err, "encode response").WithCode(mdwerror.CodeInternal)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, mdwerror.Wrap(err, "encode response").WithCode(mdwerror.CodeInternal)
	}
	return out, nil
}

// fromMap decodes a Struct map into out
func fromMap(m map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(m)
	if err != nil {
		return mdwerror.Wrap(err, "decode response").WithCode(mdwerror.CodeInternal)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return mdwerror.Wrap(err, "decode response").WithCode(mdwerror.CodeInternal)
	}
	return nil
}

func stringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[key].GetStringValue()
}

func numberField(s *structpb.Struct, key string) float64 {
	if s == nil {
		return 0
	}
	return s.GetFields()[key].GetNumberValue()
}

func boolField(s *structpb.Struct, key string) bool {
	if s == nil {
		return false
	}
	return s.GetFields()[key].GetBoolValue()
}
