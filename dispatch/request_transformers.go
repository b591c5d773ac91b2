package dispatch

import (
	"encoding/json"
)

// ApplicationJsonReqTransformer encodes Data as JSON. Nil data and raw byte
// slices are passed through.
func ApplicationJsonReqTransformer(req *Request) (data []byte, err error) {
	reqData := req.Data()
	switch v := reqData.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
	}

	return json.Marshal(reqData)
}
