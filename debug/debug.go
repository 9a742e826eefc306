package debug

import (
	"fmt"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
)

type debug struct {
	Parse    bool
	Refs     bool
	Validate bool
	Query    bool
	Diff     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("DDL_DEBUG_PARSE")
	d.Refs = boolEnv("DDL_DEBUG_REFS")
	d.Validate = boolEnv("DDL_DEBUG_VALIDATE")
	d.Query = boolEnv("DDL_DEBUG_QUERY")
	d.Diff = boolEnv("DDL_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Refs() bool {
	return d.Refs
}
func Validate() bool {
	return d.Validate
}
func Query() bool {
	return d.Query
}
func Diff() bool {
	return d.Diff
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(append(d, '\n'))
}
