package main

// main lets `go build ./...` link this package; the analyzers are loaded as a
// plugin through AnalyzerPlugin and never run main.
func main() {}
