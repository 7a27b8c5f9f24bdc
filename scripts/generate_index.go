// Command generate_index renders README.md into <dist-dir>/index.html for
// the release download page, replacing the Installation section with links
// to the archives found in dist-dir.
package main

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dist-dir>\n", os.Args[0])
		os.Exit(1)
	}
	indexPath, err := generate("README.md", os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generated %s\n", indexPath)
}

func generate(readmePath, distDir string) (string, error) {
	readme, err := os.ReadFile(readmePath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", readmePath, err)
	}
	files, err := os.ReadDir(distDir)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", distDir, err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if !f.IsDir() {
			names = append(names, f.Name())
		}
	}

	body := renderMarkdown(readme)
	body = replaceInstallationSection(body, downloadsHTML(detectVersion(names), names))

	indexPath := filepath.Join(distDir, "index.html")
	f, err := os.Create(indexPath)
	if err != nil {
		return "", fmt.Errorf("create index: %w", err)
	}
	defer f.Close()
	if err := writePage(f, body); err != nil {
		return "", fmt.Errorf("write index: %w", err)
	}
	return indexPath, nil
}

func renderMarkdown(src []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank})
	return markdown.Render(p.Parse(src), renderer)
}

// colresize_0.1.0-SNAPSHOT-abc123_Darwin_arm64.tar.gz
var archivePattern = regexp.MustCompile(`^colresize_([^_]+(?:-[^_]+)*)_(Darwin|Linux|Windows)_(arm64|x86_64)\.(?:tar\.gz|zip)$`)

func detectVersion(names []string) string {
	for _, name := range names {
		if m := archivePattern.FindStringSubmatch(name); m != nil {
			return m[1]
		}
	}
	return "unknown"
}

var platformNames = map[string]string{
	"Darwin_arm64":   "macOS (Apple Silicon)",
	"Darwin_x86_64":  "macOS (Intel)",
	"Linux_arm64":    "Linux (ARM64)",
	"Linux_x86_64":   "Linux (x86_64)",
	"Windows_arm64":  "Windows (ARM64)",
	"Windows_x86_64": "Windows (x86_64)",
}

// downloadsHTML lists one archive per platform, sorted by platform.
func downloadsHTML(version string, names []string) string {
	archives := map[string]string{}
	for _, name := range names {
		m := archivePattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		key := m[2] + "_" + m[3]
		if _, seen := archives[key]; !seen {
			archives[key] = name
		}
	}
	keys := make([]string, 0, len(archives))
	for k := range archives {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("  <div class=\"downloads\">\n    <h2>Downloads</h2>\n")
	fmt.Fprintf(&sb, "    <h3>%s</h3>\n    <table class=\"download-table\">\n", html.EscapeString(version))
	for _, k := range keys {
		fmt.Fprintf(&sb, "      <tr><td class=\"platform-name\">%s</td><td><a href=\"%s\">download</a></td></tr>\n",
			platformNames[k], html.EscapeString(archives[k]))
	}
	sb.WriteString("    </table>\n  </div>\n")
	return sb.String()
}

// replaceInstallationSection swaps the body of the Installation section
// for the downloads table. Pages without one are returned unchanged.
func replaceInstallationSection(page []byte, downloads string) []byte {
	s := string(page)
	start := strings.Index(s, `<h2 id="installation">`)
	if start == -1 {
		start = strings.Index(s, `<h2 id="install">`)
	}
	if start == -1 {
		return page
	}
	headingEnd := strings.Index(s[start:], "</h2>")
	if headingEnd == -1 {
		return page
	}
	rest := start + headingEnd + len("</h2>")
	next := strings.Index(s[rest:], `<h2 id="`)
	end := len(s)
	if next != -1 {
		end = rest + next
	}

	replacement := `<h2 id="installation">Installation</h2>
` + downloads + `
<p>Extract the archive and move the binary to your PATH:</p>
<pre><code class="language-bash">tar -xzf colresize_*.tar.gz
sudo mv colresize /usr/local/bin/
</code></pre>
`
	return []byte(s[:start] + replacement + s[end:])
}

func writePage(w io.Writer, body []byte) error {
	if _, err := fmt.Fprint(w, pageHeader); err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, "</body>\n</html>\n")
	return err
}

const pageHeader = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>colresize - resizable table columns</title>
  <style>
    body { font-family: system-ui, -apple-system, sans-serif; max-width: 900px; margin: 40px auto; padding: 0 20px; line-height: 1.6; color: #333; }
    h1 { color: #2563eb; border-bottom: 2px solid #2563eb; padding-bottom: 10px; }
    code { background: #f1f5f9; padding: 2px 6px; border-radius: 3px; font-family: Monaco, Menlo, monospace; }
    pre { background: #1e293b; color: #e2e8f0; padding: 16px; border-radius: 6px; overflow-x: auto; }
    pre code { background: none; color: inherit; padding: 0; }
    .downloads { background: #eff6ff; padding: 20px; border-radius: 8px; border-left: 4px solid #2563eb; }
    .download-table td { padding: 6px 8px; }
    .platform-name { font-weight: 500; width: 200px; }
  </style>
</head>
<body>
`
