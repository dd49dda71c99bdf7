package logflags

import "fmt"

func fmtValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return fmt.Sprintf("%x", v)
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}
