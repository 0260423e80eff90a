package httpserver

import "net/http"

// NewMux 挂上 /api/*；webDir 非空时其余路径当静态文件目录
func NewMux(h http.Handler, webDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/", h)
	if webDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(webDir)))
	}
	return mux
}
