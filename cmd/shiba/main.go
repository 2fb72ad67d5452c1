// The shiba command performs common tasks related to testbenches built with
// Shiba, such as inspecting recorded run databases.
package main

func main() {
	Execute()
}
