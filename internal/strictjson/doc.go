// Package strictjson checks that a JSON object carries every field of the
// struct it is decoded into. encoding/json leaves absent fields at their zero
// values; settings files must instead be complete.
package strictjson
