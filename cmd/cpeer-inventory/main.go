package main

import (
	"github.com/autopeer-io/inventory/cmd/cpeer-inventory/app"
)

func main() {
	app.NewApp().Run()
}
