package main

import (
	"flag"
	"go/ast"

	"golang.org/x/tools/go/analysis"
)

var DeferCloseAnalyzer = &analysis.Analyzer{
	Name:             "deferclose",
	Doc:              "check that store iterators and files are closed in a defer",
	Run:              runDeferClose,
	URL:              "",
	Flags:            flag.FlagSet{Usage: nil},
	RunDespiteErrors: false,
	Requires:         nil,
	ResultType:       nil,
	FactTypes:        nil,
}

func runDeferClose(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		deferred := make(map[*ast.CallExpr]bool)
		ast.Inspect(file, func(n ast.Node) bool {
			d, ok := n.(*ast.DeferStmt)
			if !ok {
				return true
			}
			// also covers Close calls inside a deferred func literal
			ast.Inspect(d.Call, func(n ast.Node) bool {
				if call, ok := n.(*ast.CallExpr); ok && isCloseCall(call) {
					deferred[call] = true
				}
				return true
			})
			return true
		})

		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok || !isCloseCall(call) || deferred[call] {
				return true
			}
			pass.Reportf(call.Pos(), "Close() call without defer")
			return true
		})
	}
	return nil, nil //nolint:nilnil
}

func isCloseCall(call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	return ok && sel.Sel.Name == "Close" && len(call.Args) == 0
}
