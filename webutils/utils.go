package webutils

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
)

func WriteFileHeaders(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
}

func WriteFile(w http.ResponseWriter, in io.Reader, name string) {
	WriteFileHeaders(w, name)
	io.Copy(w, in)
}

func WriteJson(w http.ResponseWriter, data interface{}) {
	res, err := json.Marshal(data)
	if err != nil {
		WriteError(w, err)
	} else {
		w.Header().Set("Content-Type", "application/json")
		WriteResult(w, res)
	}
}

func WriteResult(w http.ResponseWriter, data []byte) {
	_, err := w.Write(data)
	if err != nil {
		log.Printf("[web] Error when writing response: %v", err)
	}
}

// WriteError answers with a json {"error": ...} body and the given status, 500 by default.
func WriteError(w http.ResponseWriter, err error, status ...int) {
	type jError struct {
		Error string `json:"error"`
	}
	code := http.StatusInternalServerError
	if len(status) != 0 {
		code = status[0]
	}
	data, merr := json.Marshal(&jError{Error: err.Error()})
	if merr != nil {
		log.Printf("[web] Error marshaling error '%v': %v", err, merr)
		http.Error(w, err.Error(), code)
		return
	}
	log.Printf("[web] HERR: %v", string(data))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	WriteResult(w, data)
}
