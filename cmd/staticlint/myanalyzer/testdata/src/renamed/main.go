package main

import sys "os"

func main() {
	sys.Exit(1) // want "прямой вызов os.Exit запрещен в функции main"
}
