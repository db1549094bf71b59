// Package record maps Go structs to worksheet rows and back using struct
// tags. A field opts in with the xlsx tag:
//
//	type Person struct {
//		Name    string    `xlsx:"Full Name"`
//		Age     int       `xlsx:"Age"`
//		Active  bool      `xlsx:"Active,true=Yes,false=No"`
//		Joined  time.Time `xlsx:"Joined"`
//		Code    string    `xlsx:"Code,index=5"`
//		Ignored string    `xlsx:"-"`
//	}
//
// Tag options: index=N binds a fixed column for reading (writing always
// uses declaration order), skipread and skipwrite exclude the field from
// one direction, and true=/false= set the boolean words for this column.
// An untagged exported field maps under its own name.
//
// Field registries are reflected once per type and cached.
package record
