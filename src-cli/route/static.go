package route

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"worklens/src-cli/aggregate"
)

// Static serves the analysis output directory so generated reports and the
// JSON snapshot can be viewed locally. The bare path lists nothing fancy: it
// redirects to the snapshot artifact.
func Static(muxer *http.ServeMux, outputDir string) {
	files := http.FS(os.DirFS(outputDir))

	muxer.HandleFunc("GET /{filepath...}", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Clean(r.PathValue("filepath"))
		if path == "." {
			http.Redirect(w, r, "/"+aggregate.SnapshotFileName, http.StatusFound)
			return
		}

		file, err := files.Open(path)
		if err != nil {
			slog.Debug("requested file not found", "path", path)
			http.NotFound(w, r)
			return
		}
		defer file.Close()

		stat, err := file.Stat()
		if err != nil || stat.IsDir() {
			http.NotFound(w, r)
			return
		}

		http.ServeContent(w, r, stat.Name(), stat.ModTime(), file)
	})
}
