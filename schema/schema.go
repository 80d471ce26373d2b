// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package schema - the client defined field layout of a database
//
// created once per database, stored encrypted on the storage node and
// used locally to validate every record before it is submitted
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/blobvault/fault"
)

// FieldType - the declarable field types
type FieldType int

// all possible field types
const (
	String FieldType = iota
	Number
	Boolean
	Object
	Array
	invalidType
)

// names used in the JSON form of a definition
var fieldTypeNames = map[FieldType]string{
	String:  "string",
	Number:  "number",
	Boolean: "boolean",
	Object:  "object",
	Array:   "array",
}

var fieldTypeValues = map[string]FieldType{}

func init() {
	for t, name := range fieldTypeNames {
		fieldTypeValues[name] = t
	}
}

// String - printable field type
func (t FieldType) String() string {
	name, ok := fieldTypeNames[t]
	if !ok {
		return "*unknown*"
	}
	return name
}

// MarshalText - JSON form of a field type
func (t FieldType) MarshalText() ([]byte, error) {
	name, ok := fieldTypeNames[t]
	if !ok {
		return nil, fault.InvalidSchemaDefinition
	}
	return []byte(name), nil
}

// UnmarshalText - unknown type names are rejected here, at
// definition decode time, not at record write time
func (t *FieldType) UnmarshalText(s []byte) error {
	value, ok := fieldTypeValues[string(s)]
	if !ok {
		return fault.InvalidSchemaDefinition
	}
	*t = value
	return nil
}

// Field - one declared field
type Field struct {
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
}

// Definition - mapping from field name to its declaration
type Definition map[string]Field

// Validate - check a definition is well formed
func (definition Definition) Validate() error {
	if 0 == len(definition) {
		return fault.InvalidSchemaDefinition
	}
	for name, field := range definition {
		if "" == name {
			return fault.InvalidSchemaDefinition
		}
		if field.Type < String || field.Type >= invalidType {
			return fault.InvalidSchemaDefinition
		}
	}
	return nil
}

// DefinitionFromJSON - decode and validate a definition
func DefinitionFromJSON(data []byte) (Definition, error) {
	definition := Definition{}
	err := json.Unmarshal(data, &definition)
	if nil != err {
		return nil, fault.InvalidSchemaDefinition
	}
	err = definition.Validate()
	if nil != err {
		return nil, err
	}
	return definition, nil
}

// ViolationError - a record failed validation against the definition
type ViolationError struct {
	Field  string
	Reason string
}

// Error - the error interface
func (e *ViolationError) Error() string {
	return fmt.Sprintf("schema violation on field %q: %s", e.Field, e.Reason)
}

// ValidateRecord - check a decoded JSON object against the definition
//
// required fields must be present and non-null, present fields must
// match their declared type; fields not declared in the definition
// are accepted unchecked, the schema is open for forward
// compatibility
func (definition Definition) ValidateRecord(data map[string]interface{}) error {

	for name, field := range definition {
		value, ok := data[name]
		if !ok || nil == value {
			if field.Required {
				return &ViolationError{
					Field:  name,
					Reason: "required field is missing or null",
				}
			}
			continue
		}

		if !matchesType(value, field.Type) {
			return &ViolationError{
				Field:  name,
				Reason: fmt.Sprintf("value is not of type %s", field.Type),
			}
		}
	}
	return nil
}

// runtime type check against the generic JSON decoding
//
// note: object explicitly excludes arrays and array explicitly
// requires arrays
func matchesType(value interface{}, t FieldType) bool {
	switch t {
	case String:
		_, ok := value.(string)
		return ok
	case Number:
		switch value.(type) {
		case float64, json.Number:
			return true
		}
		return false
	case Boolean:
		_, ok := value.(bool)
		return ok
	case Object:
		_, ok := value.(map[string]interface{})
		return ok
	case Array:
		_, ok := value.([]interface{})
		return ok
	default:
		return false
	}
}
