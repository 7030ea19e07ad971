package main

import (
	"blockproj/internal/app"
	"blockproj/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
