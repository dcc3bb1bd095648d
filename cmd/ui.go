package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/docai-showcase/docai/pkg/docai"
	"github.com/docai-showcase/docai/pkg/overlay"
	"github.com/docai-showcase/docai/pkg/raster"
	"github.com/spf13/cobra"
)

var (
	uiPort string
	uiHost string
)

// AnalysisSession holds one analyzed document and its rendered pages.
// Sessions are independent; a new upload never touches an existing one.
type AnalysisSession struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	Processor string    `json:"processor"`
	Variant   string    `json:"variant"`
	PageCount int       `json:"page_count"`
	CreatedAt time.Time `json:"created_at"`

	result *docai.AnalysisResult
	pages  []raster.PageImage
}

var (
	sessionsMu sync.RWMutex
	sessions   = make(map[string]*AnalysisSession)
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Start the document overlay web interface",
	Long:  "Start a web server that uploads documents, analyzes them, and serves page images with interactive bounding-box overlays.",
	RunE:  runUI,
}

func init() {
	RootCmd.AddCommand(uiCmd)
	uiCmd.Flags().StringVar(&uiPort, "port", "8888", "Port to run the web server on")
	uiCmd.Flags().StringVar(&uiHost, "host", "localhost", "Host to bind the web server to")
}

func runUI(cmd *cobra.Command, args []string) error {
	client, err := docai.NewClientFromEnv()
	if err != nil {
		return err
	}

	http.HandleFunc("/", handleIndex)
	http.HandleFunc("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
		handleAnalyze(w, r, client)
	})
	http.HandleFunc("/api/sessions", handleSessions)
	http.HandleFunc("/api/sessions/", handleSessionDetail)

	addr := fmt.Sprintf("%s:%s", uiHost, uiPort)
	slog.Info("Document overlay interface available", "url", fmt.Sprintf("http://%s", addr))

	return http.ListenAndServe(addr, nil)
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func handleAnalyze(w http.ResponseWriter, r *http.Request, client *docai.Client) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		if raster.IsPDF(data, "") {
			mimeType = "application/pdf"
		} else {
			mimeType = "image/png"
		}
	}

	processorID := r.FormValue("processor_id")
	if processorID == "" {
		http.Error(w, "Missing processor_id", http.StatusBadRequest)
		return
	}
	processorType := r.FormValue("processor_type")

	opts := &docai.ProcessOptions{
		EnableLayoutChunking: processorType == "LAYOUT_PARSER_PROCESSOR",
	}
	result, err := client.ProcessDocument(r.Context(), processorID, data, mimeType, opts)
	if err != nil {
		slog.Error("Document analysis failed", "err", err)
		http.Error(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusBadGateway)
		return
	}

	pages, err := raster.RenderPages(data, mimeType)
	if err != nil {
		slog.Error("Page rendering failed", "err", err)
		http.Error(w, fmt.Sprintf("Page rendering failed: %v", err), http.StatusInternalServerError)
		return
	}

	session := &AnalysisSession{
		ID:        fmt.Sprintf("session_%d", time.Now().UnixNano()),
		FileName:  header.Filename,
		MimeType:  mimeType,
		Processor: processorID,
		Variant:   result.Variant().String(),
		PageCount: len(pages),
		CreatedAt: time.Now(),
		result:    result,
		pages:     pages,
	}

	sessionsMu.Lock()
	sessions[session.ID] = session
	sessionsMu.Unlock()

	slog.Info("Analysis session created", "id", session.ID, "file", session.FileName, "variant", session.Variant)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(session); err != nil {
		slog.Warn("Failed to encode session", "err", err)
	}
}

func handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionsMu.RLock()
	list := make([]*AnalysisSession, 0, len(sessions))
	for _, session := range sessions {
		list = append(list, session)
	}
	sessionsMu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		slog.Warn("Failed to encode session list", "err", err)
	}
}

func handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	parts := strings.Split(rest, "/")

	sessionsMu.RLock()
	session, exists := sessions[parts[0]]
	sessionsMu.RUnlock()
	if !exists {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	switch {
	case len(parts) == 1:
		serveSessionSummary(w, session)
	case len(parts) == 3 && parts[1] == "pages":
		servePageImage(w, session, parts[2])
	case len(parts) == 2 && parts[1] == "boxes":
		serveDisplayBoxes(w, r, session)
	case len(parts) == 2 && parts[1] == "overlay":
		serveOverlay(w, r, session)
	default:
		http.NotFound(w, r)
	}
}

func serveSessionSummary(w http.ResponseWriter, session *AnalysisSession) {
	summary := map[string]any{
		"session": session,
		"text":    session.result.Text(),
		"fields":  session.result.FormattedFields(),
	}
	if session.result.IsLayoutParserResult() {
		summary["layout"] = session.result.DocumentLayout()
		summary["chunks"] = session.result.ChunkedDocument()
		summary["layout_pages"] = session.result.LayoutPageCount()
	} else {
		summary["tables"] = session.result.Tables()
		summary["entities"] = session.result.Entities()
		summary["form_fields"] = session.result.FormFields()
		summary["checkboxes"] = session.result.Checkboxes()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		slog.Warn("Failed to encode session summary", "err", err)
	}
}

func servePageImage(w http.ResponseWriter, session *AnalysisSession, pageStr string) {
	pageIdx, err := strconv.Atoi(strings.TrimSuffix(pageStr, ".png"))
	if err != nil || pageIdx < 0 || pageIdx >= len(session.pages) {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(session.pages[pageIdx].PNG); err != nil {
		slog.Warn("Failed to write page image", "err", err)
	}
}

// displayBoxesForPage applies the rotation correction for one page using the
// API-reported dimensions and the rendered raster's pixel dimensions.
func displayBoxesForPage(session *AnalysisSession, pageIdx int) map[string][]docai.Box {
	all := session.result.BoundingBoxes()
	page := session.pages[pageIdx]
	apiWidth, apiHeight, ok := session.result.PageDimensions(pageIdx)
	if !ok {
		return overlay.BoxesForPage(all, pageIdx)
	}
	return overlay.DisplayBoxes(all, pageIdx, apiWidth, apiHeight, page.Width, page.Height)
}

func serveDisplayBoxes(w http.ResponseWriter, r *http.Request, session *AnalysisSession) {
	pageIdx, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || pageIdx < 0 || pageIdx >= len(session.pages) {
		http.Error(w, "Invalid page", http.StatusBadRequest)
		return
	}

	page := session.pages[pageIdx]
	response := map[string]any{
		"page":   pageIdx,
		"width":  page.Width,
		"height": page.Height,
		"boxes":  displayBoxesForPage(session, pageIdx),
		"styles": overlay.Styles(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Warn("Failed to encode boxes", "err", err)
	}
}

func serveOverlay(w http.ResponseWriter, r *http.Request, session *AnalysisSession) {
	pageIdx, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || pageIdx < 0 || pageIdx >= len(session.pages) {
		http.Error(w, "Invalid page", http.StatusBadRequest)
		return
	}
	zoom := 1.0
	if z := r.URL.Query().Get("zoom"); z != "" {
		if parsed, err := strconv.ParseFloat(z, 64); err == nil && parsed > 0 {
			zoom = parsed
		}
	}

	page := session.pages[pageIdx]
	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(page.PNG)
	html := overlay.RenderHTML(dataURI, displayBoxesForPage(session, pageIdx), page.Width, page.Height, zoom)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, overlay.LegendHTML())
	fmt.Fprint(w, html)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Document AI Showcase</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; color: #333; }
.legend { display: flex; gap: 1em; margin: 1em 0; }
.legend-item { display: flex; align-items: center; gap: 4px; font-size: 14px; }
.swatch { width: 24px; height: 14px; display: inline-block; border: 1px solid #ccc; }
.box { position: absolute; }
.box:hover { background: rgba(255, 255, 0, 0.2); }
#viewer { margin-top: 1em; }
</style>
</head>
<body>
<h1>Document AI Showcase</h1>
<form id="upload">
<input type="file" name="file" required>
<input type="text" name="processor_id" placeholder="Processor ID" required>
<input type="text" name="processor_type" placeholder="Processor type (optional)">
<button type="submit">Analyze</button>
</form>
<div id="status"></div>
<div id="nav"></div>
<div id="viewer"></div>
<script>
let session = null;
let page = 0;

document.getElementById('upload').addEventListener('submit', async (e) => {
  e.preventDefault();
  const status = document.getElementById('status');
  status.textContent = 'Processing...';
  const resp = await fetch('/api/analyze', { method: 'POST', body: new FormData(e.target) });
  if (!resp.ok) { status.textContent = await resp.text(); return; }
  session = await resp.json();
  page = 0;
  status.textContent = 'Analyzed ' + session.file_name + ' (' + session.page_count + ' pages, ' + session.variant + ' result)';
  render();
});

async function render() {
  if (!session) return;
  const nav = document.getElementById('nav');
  nav.innerHTML = '';
  for (let i = 0; i < session.page_count; i++) {
    const btn = document.createElement('button');
    btn.textContent = 'Page ' + (i + 1);
    btn.disabled = i === page;
    btn.onclick = () => { page = i; render(); };
    nav.appendChild(btn);
  }
  const resp = await fetch('/api/sessions/' + session.id + '/overlay?page=' + page);
  document.getElementById('viewer').innerHTML = await resp.text();
}
</script>
</body>
</html>
`
