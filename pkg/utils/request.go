package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxJSONBody JSON 请求体上限
const maxJSONBody = 1 << 20

// DecodeJSON 解析请求体到 dst，空请求体不修改 dst
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
