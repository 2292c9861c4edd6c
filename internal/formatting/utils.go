package formatting

import (
	"encoding/json"
	"fmt"
)

// PrettyJSON formats any value as indented JSON. Values that cannot be
// marshaled are printed with %v instead.
//
// Example:
//
//	fmt.Println(formatting.PrettyJSON(map[string]interface{}{"name": "env"}))
//	// Output:
//	// {
//	//   "name": "env"
//	// }
func PrettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
