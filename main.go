/*
Copyright © 2026 Marek Kvarda (mkvarda) <marek@kvarda.dev>
*/
package main

import "github.com/mkvarda/agora/cmd"

func main() {
	cmd.Execute()
}
