package main

import (
	"log"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/hydropure/water-assistant/catalog"
	"github.com/hydropure/water-assistant/config"
	"github.com/hydropure/water-assistant/retrieval"
)

type Agent struct {
	config   *config.Config
	handler  *Handler
	catalog  *catalog.Store
	sessions *SessionManager
	upgrader websocket.Upgrader
}

func main() {
	cfg := config.LoadConfig()

	if cfg.Groq.APIKey == "" {
		log.Fatal("GROQ_APIKEY is required")
	}

	store, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("catalog loaded", "products", store.Len())

	embeddingLLM, err := ollama.New(
		ollama.WithServerURL(cfg.Ollama.Address()),
		ollama.WithModel(cfg.Ollama.EmbeddingModel),
	)
	if err != nil {
		log.Fatal(err)
	}

	searcher, err := retrieval.NewPgSearcher(cfg.Postgres.ConnStr(), embeddingLLM)
	if err != nil {
		log.Fatal(err)
	}
	fallback := retrieval.NewFallback(searcher, store, cfg.Assistant.RetrieverTopK, cfg.Assistant.FallbackResults)

	completer, err := newGroqCompleter(cfg.Groq)
	if err != nil {
		log.Fatal(err)
	}

	agent := &Agent{
		config:   cfg,
		handler:  NewHandler(store, completer, fallback, cfg.Assistant.MaxProducts, cfg.Assistant.MaxDocs),
		catalog:  store,
		sessions: NewSessionManager(cfg.Assistant.HistoryLimit),
		upgrader: websocket.Upgrader{},
	}

	if err := agent.Run(); err != nil {
		log.Fatalf("failed to run the agent: %v", err)
	}
}

func (a *Agent) Run() error {
	r := gin.Default()

	r.StaticFile("/", "web/index.html")

	r.GET("/chat", func(ctx *gin.Context) {
		sessionID, _ := ctx.GetQuery("session")
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		sess := a.sessions.Get(sessionID)

		c, err := a.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		defer c.Close()
		// One conversation per connection: the session dies with the socket.
		defer a.sessions.Drop(sessionID)

		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				return
			}

			reply, err := a.handler.ProcessTurn(ctx.Request.Context(), sess, string(raw))
			if err != nil {
				slog.Error("turn failed", "session", sessionID, "error", err)
				if writeErr := c.WriteJSON(WebSocketsMessage{Type: MessageTypeError, Data: apologyMessage}); writeErr != nil {
					return
				}
				continue
			}

			if err := c.WriteJSON(WebSocketsMessage{Type: MessageTypeChat, Data: reply.Text}); err != nil {
				slog.Error("failed to write to ws connection", "error", err)
				return
			}
			if len(reply.Products) > 0 {
				if err := c.WriteJSON(WebSocketsMessage{Type: MessageTypeProducts, Data: toCards(reply.Products)}); err != nil {
					return
				}
			}
			if reply.ImageURL != "" {
				if err := c.WriteJSON(WebSocketsMessage{Type: MessageTypeImage, Data: reply.ImageURL}); err != nil {
					return
				}
			}
		}
	})

	r.GET("/products", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, toCards(a.catalog.All()))
	})

	return r.Run(a.config.Server.Address())
}
