// Package myanalyzer содержит анализатор noosexit, запрещающий прямой
// вызов os.Exit в функции main пакета main.
package myanalyzer

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// NoOsExitAnalyzer сообщает о вызовах os.Exit в теле main.main.
//
// Пример неправильного использования:
//
//	func main() {
//	    os.Exit(1) // вызовет ошибку анализатора
//	}
//
// Рекомендуемая замена:
//
//	func main() {
//	    if err := run(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
var NoOsExitAnalyzer = &analysis.Analyzer{
	Name: "noosexit",
	Doc:  "запрещает прямой вызов os.Exit в функции main пакета main",
	Run:  runNoOsExit,
}

func runNoOsExit(pass *analysis.Pass) (any, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil || fn.Name.Name != "main" || fn.Body == nil {
				continue
			}

			ast.Inspect(fn.Body, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if ok && isOsExit(pass, call) {
					pass.Reportf(call.Pos(), "прямой вызов os.Exit запрещен в функции main")
				}
				return true
			})
		}
	}

	return nil, nil
}

// isOsExit учитывает переименованный импорт: os проверяется по пути пакета, а не по имени.
func isOsExit(pass *analysis.Pass, call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Exit" {
		return false
	}

	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}

	pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	return ok && pkgName.Imported().Path() == "os"
}
