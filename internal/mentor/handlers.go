package mentor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voice-mentor/internal/telephony"
	"voice-mentor/pkg/logger"
)

const twimlContentType = "text/xml; charset=utf-8"

// fallbackTwiML is served only if rendering a document itself fails.
const fallbackTwiML = `<?xml version="1.0" encoding="UTF-8"?>
<Response><Say voice="Polly.Amy-Neural">I apologize, but I'm having some trouble. Please call again later.</Say><Hangup/></Response>`

// Handlers serves the voice webhooks. They always answer 200 with TwiML:
// an HTTP error would drop the caller mid-sentence.
type Handlers struct {
	Flow *Flow
}

// Voice answers a newly connected call.
func (h Handlers) Voice(c *gin.Context) {
	log := logger.FromGin(c)

	p, err := telephony.ReadParams(c.Request)
	if err != nil {
		log.Warn("voice webhook params unreadable", "err", err)
	}
	if sid := p.Body("CallSid"); sid != "" {
		logger.TagCallSID(c, sid)
	}

	careerPath := p.Get(paramCareerPath)
	userID := p.Get(paramUserID)
	doc := h.Flow.Greeting(c.Request.Context(), careerPath, userID)
	writeDocument(c, doc)
}

// Respond handles one gathered speech turn.
func (h Handlers) Respond(c *gin.Context) {
	log := logger.FromGin(c)

	p, err := telephony.ReadParams(c.Request)
	if err != nil {
		log.Warn("respond webhook params unreadable", "err", err)
	}
	if sid := p.Body("CallSid"); sid != "" {
		logger.TagCallSID(c, sid)
		log = logger.FromGin(c)
	}

	s, err := SessionFromParams(p)
	if err != nil {
		log.Warn("session history dropped", "err", err)
	}
	speech, _ := p.FirstBody(telephony.SpeechFields)

	doc, outcome := h.Flow.Respond(c.Request.Context(), s, speech)
	log.Info("turn handled", "turn", s.Turn, "outcome", string(outcome))
	writeDocument(c, doc)
}

func writeDocument(c *gin.Context, doc *telephony.Document) {
	out, err := doc.Render()
	if err != nil {
		logger.FromGin(c).Error("twiml render failed", "err", err)
		c.Data(http.StatusOK, twimlContentType, []byte(fallbackTwiML))
		return
	}
	c.Data(http.StatusOK, twimlContentType, []byte(out))
}
