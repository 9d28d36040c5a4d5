package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

// this linter checks that the default params and genesis validate, that every
// param keeps the same toml and json key and that the uint32 percentage params
// (every uint32 other than the weight cap) are at most 100
func main() {
	params := types.DefaultParams()
	if err := params.Validate(); err != nil {
		fmt.Printf("Default params do not validate: %v\n", err)
		os.Exit(2)
	}
	vp := reflect.ValueOf(params)
	fields := reflect.VisibleFields(reflect.TypeOf(params))
	for _, field := range fields {
		if field.Tag.Get("toml") != field.Tag.Get("json") {
			fmt.Printf("Field %s has mismatched toml and json keys\n", field.Name)
			os.Exit(2)
		}
		if field.Type.Kind() != reflect.Uint32 || field.Name == "MaxWeightLimit" {
			continue
		}
		if v := vp.FieldByName(field.Name).Uint(); v > types.MaxPercentage {
			fmt.Printf("Default %s is %d, above %d\n", field.Name, v, types.MaxPercentage)
			os.Exit(2)
		}
	}
	if err := types.DefaultGenesis().Validate(); err != nil {
		fmt.Printf("Default genesis does not validate: %v\n", err)
		os.Exit(2)
	}
}
