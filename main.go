/*
Copyright © 2026 JACOB ARTHURS
*/
package main

import "github.com/jacobarthurs/pgroomba/cmd"

func main() {
	cmd.Execute()
}
