package repl

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/google/uuid"

	"scam/internal/eval"
	"scam/internal/lexer"
	"scam/internal/parser"
	"scam/internal/value"
)

// ServerOptions configures Serve.
type ServerOptions struct {
	Addr      string
	Verbose   bool
	NewRecord func() value.Observer // optional, applied per connection
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve runs a websocket remote REPL: one Collector and one environment
// per connection, grounded on the teacher's internal/network/websocket.go
// accept loop (an http.Server handler that upgrades, then reads messages
// in a per-connection goroutine) but simplified to the single-connection
// evaluation loop this interpreter actually needs, instead of a shared
// server-wide client registry.
func Serve(opts ServerOptions) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handleConn(w, r, opts)
	})
	server := &http.Server{Addr: opts.Addr, Handler: mux}
	log.Printf("scam serve: listening on %s", opts.Addr)
	return server.ListenAndServe()
}

func handleConn(w http.ResponseWriter, r *http.Request, opts ServerOptions) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("scam serve: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	c := value.NewCollector(0)
	defer c.Teardown()
	if opts.NewRecord != nil {
		c.SetObserver(opts.NewRecord())
	}
	env := NewEnv(c)

	if opts.Verbose {
		log.Printf("scam serve: connection %s opened", connID)
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		reply := evalMessage(c, env, string(msg))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			break
		}
	}

	if opts.Verbose {
		log.Printf("scam serve: connection %s closed", connID)
	}
}

// evalMessage parses and evaluates a single form from msg, returning its
// printed result (or a parse/eval error message) as one line of text.
func evalMessage(c *value.Collector, env value.Value, msg string) string {
	lx := lexer.New(msg)
	p := parser.New(c, lx.Tokens(), "<ws>", msg)
	form, _, err := p.ParseOne()
	if err != nil {
		return err.Error()
	}
	if form.Nil() {
		return ""
	}
	result := eval.Eval(c, env, form)
	c.SetRoot(result)
	return value.Sprint(result)
}
