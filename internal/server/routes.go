package server

import (
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/disctl/internal/inspect"
	"github.com/danmuck/disctl/internal/observability"
	"github.com/danmuck/disctl/internal/protocol/pdu"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxDecodeBody = 1 << 16

type typeEntry struct {
	ID       uint8  `json:"id"`
	Name     string `json:"name"`
	FamilyID uint8  `json:"family_id"`
	Family   string `json:"family"`
}

func (s *Inspector) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).String(),
			"service": "disctl",
			"version": Version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/types", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"types": s.types()})
	})

	s.router.GET("/types/:type/sample", func(c *gin.Context) {
		typ, ok := pdu.ParseType(c.Param("type"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown pdu type " + strconv.Quote(c.Param("type"))})
			return
		}
		if _, ok := s.registry.Resolve(typ); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "pdu type not registered: " + typ.String()})
			return
		}
		p, err := pdu.SamplePdu(1, typ)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		b, err := pdu.Marshal(p)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"hex": hex.EncodeToString(b), "tree": pdu.Describe(p)})
	})

	s.router.GET("/recent", func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		items := s.recent.Snapshot(limit)
		switch c.DefaultQuery("format", "json") {
		case "json":
			c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
		case "text":
			var b strings.Builder
			for _, item := range items {
				b.WriteString(inspect.RenderText(item.Tree))
			}
			c.String(http.StatusOK, b.String())
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json or text"})
		}
	})

	s.router.GET("/stats", func(c *gin.Context) {
		if s.stats == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "receiver not running"})
			return
		}
		c.JSON(http.StatusOK, s.stats())
	})

	// POST /decode takes a raw datagram, or hex text when ?hex=true.
	s.router.POST("/decode", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDecodeBody)
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		if c.Query("hex") == "true" {
			body, err = hex.DecodeString(strings.TrimSpace(string(body)))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hex: " + err.Error()})
				return
			}
		}
		pdus, err := s.decoder.DecodeStream(body)
		c.Set(observability.DecodedKey, len(pdus))
		if err != nil {
			c.Set(observability.DecodeErrorKey, err)
		}
		now := time.Now()
		items := make([]inspect.Summary, 0, len(pdus))
		for _, p := range pdus {
			items = append(items, inspect.Summarize(p, "", c.ClientIP(), now))
		}
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "items": items})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
	})
}

func (s *Inspector) types() []typeEntry {
	list := make([]typeEntry, 0)
	for _, typ := range s.registry.Types() {
		factory, _ := s.registry.Resolve(typ)
		family := factory().Family()
		list = append(list, typeEntry{
			ID:       uint8(typ),
			Name:     typ.String(),
			FamilyID: uint8(family),
			Family:   family.String(),
		})
	}
	return list
}
