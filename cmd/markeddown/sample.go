package main

import (
	"fmt"

	"github.com/fwojciec/markeddown"
)

// sampleHTML is a small page with the usual boilerplate around its content.
const sampleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Sample Page</title>
  <style>body { font-family: sans-serif; }</style>
</head>
<body>
  <header><a href="/">Home</a></header>
  <nav><ul><li><a href="/blog">Blog</a></li><li><a href="/about">About</a></li></ul></nav>
  <main>
    <h1>Welcome to markeddown</h1>
    <p>This page shows how <strong>HTML</strong> is turned into <em>clean</em> Markdown.</p>
    <h2>Features</h2>
    <ul>
      <li>Content selection</li>
      <li>Boilerplate removal</li>
      <li>Markdown cleanup</li>
    </ul>
    <table>
      <thead><tr><th>Input</th><th>Output</th></tr></thead>
      <tbody><tr><td>HTML</td><td>Markdown</td></tr></tbody>
    </table>
    <p><a href="/docs"><img src="/diagram.png" alt="Diagram"></a><a href="/docs">Read the docs</a></p>
    <script>console.log("ignored");</script>
  </main>
  <footer>&copy; 2024 Example</footer>
</body>
</html>`

// Run executes the sample command.
func (c *SampleCmd) Run(deps *Dependencies) error {
	md, err := deps.Service.ConvertDocument(deps.Ctx, sampleHTML, "", "")
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", markeddown.ErrorMessage(err))
		return err
	}

	if deps.Verbose {
		printStats(deps.Stderr, "sample", sampleHTML, md)
	}
	fmt.Fprintln(deps.Stdout, md)
	return nil
}
