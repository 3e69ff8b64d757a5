package main

import "os"

func main() {
	defer func() {
		os.Exit(2) // want "прямой вызов os.Exit запрещен в функции main"
	}()
	os.Exit(1) // want "прямой вызов os.Exit запрещен в функции main"
}
