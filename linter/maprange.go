package main

import (
	"flag"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

var AnalyzerPlugin = map[string]*analysis.Analyzer{
	"maprange":   Analyzer,
	"deferclose": DeferCloseAnalyzer,
}

var Analyzer = &analysis.Analyzer{
	Name:             "maprange",
	Doc:              "check for range loops over maps outside of sorted key collection",
	Run:              run,
	URL:              "",
	Flags:            flag.FlagSet{Usage: nil},
	RunDespiteErrors: false,
	Requires:         nil,
	ResultType:       nil,
	FactTypes:        nil,
}

func New(conf any) ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{Analyzer, DeferCloseAnalyzer}, nil
}

// sortFuncs are the calls that make a collected key slice deterministic.
var sortFuncs = map[string]map[string]bool{
	"sort":   {"Slice": true, "SliceStable": true, "Strings": true, "Ints": true, "Sort": true},
	"slices": {"Sort": true, "SortFunc": true, "SortStableFunc": true},
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Body == nil {
				continue
			}
			sorts := callsSort(fn.Body)
			ast.Inspect(fn.Body, func(n ast.Node) bool {
				rangeStmt, ok := n.(*ast.RangeStmt)
				if !ok {
					return true
				}

				exprType := pass.TypesInfo.TypeOf(rangeStmt.X)
				if _, ok := exprType.Underlying().(*types.Map); !ok {
					return true
				}
				// collecting keys and sorting them afterwards is the deterministic way to walk a map
				if sorts && keysOnly(rangeStmt) {
					return true
				}
				pass.Reportf(rangeStmt.Pos(), "range over map detected, which can be non-deterministic")
				return true
			})
		}
	}
	return nil, nil //nolint:nilnil
}

func keysOnly(rangeStmt *ast.RangeStmt) bool {
	if rangeStmt.Value == nil {
		return true
	}
	ident, ok := rangeStmt.Value.(*ast.Ident)
	return ok && ident.Name == "_"
}

func callsSort(body *ast.BlockStmt) bool {
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return !found
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		pkg, ok := sel.X.(*ast.Ident)
		if ok && sortFuncs[pkg.Name][sel.Sel.Name] {
			found = true
		}
		return !found
	})
	return found
}
