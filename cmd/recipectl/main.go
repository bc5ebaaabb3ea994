// Package main implements recipectl, the admin and local development CLI of the recipes
// backend.
package main

import "github.com/DeanGilewicz/serverless-recipes-BE/cmd/recipectl/cmd"

func main() {
	cmd.Execute()
}
