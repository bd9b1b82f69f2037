// 18 Oct 2026

package main

import (
	"os"

	"github.com/andrew-torda/kymia/pkg/kymia"
)

func main() {
	os.Exit(kymia.MyMain())
}
