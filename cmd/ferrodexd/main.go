// Command ferrodexd builds an inverted index over a directory tree and
// answers boolean TF-IDF queries against it, either once on stdout or
// continuously over HTTP.
package main

func main() {
	Execute()
}
