package main

import "github.com/iamvkosarev/prompt-form/cmd"

func main() {
	cmd.Execute()
}
