package telephony

import (
	"errors"
	"strconv"
	"strings"

	"github.com/twilio/twilio-go/twiml"
)

// Document is a TwiML voice response under construction. It records the verbs
// the mentoring flow speaks so callers can inspect a document before rendering;
// Render hands them to the SDK's twiml package.
type Document struct {
	verbs []verb
}

// Voice used for every <Say>.
const Voice = "Polly.Amy-Neural"

// Gather options fixed by the mentoring protocol.
const (
	gatherInput         = "speech"
	gatherMethod        = "POST"
	gatherSpeechTimeout = "auto"
	gatherLanguage      = "en-US"
)

type verbKind int

const (
	verbSay verbKind = iota
	verbPause
	verbGather
	verbHangup
)

type verb struct {
	kind verbKind
	// text is the spoken line for Say and the nested prompt for Gather.
	text    string
	seconds int
	action  string
}

func NewDocument() *Document { return &Document{} }

func (d *Document) Say(text string) *Document {
	d.verbs = append(d.verbs, verb{kind: verbSay, text: text})
	return d
}

func (d *Document) Pause(seconds int) *Document {
	d.verbs = append(d.verbs, verb{kind: verbPause, seconds: seconds})
	return d
}

// Gather listens for speech, posts the transcript to action and speaks prompt while waiting.
func (d *Document) Gather(action, prompt string) *Document {
	d.verbs = append(d.verbs, verb{kind: verbGather, action: action, text: prompt})
	return d
}

func (d *Document) Hangup() *Document {
	d.verbs = append(d.verbs, verb{kind: verbHangup})
	return d
}

// Render encodes the document with an XML declaration.
func (d *Document) Render() (string, error) {
	elems := make([]twiml.Element, 0, len(d.verbs))
	for _, v := range d.verbs {
		switch v.kind {
		case verbSay:
			elems = append(elems, say(v.text))
		case verbPause:
			p := &twiml.VoicePause{}
			if v.seconds > 0 {
				p.Length = strconv.Itoa(v.seconds)
			}
			elems = append(elems, p)
		case verbGather:
			if strings.TrimSpace(v.action) == "" {
				return "", errors.New("telephony: gather requires an action url")
			}
			elems = append(elems, &twiml.VoiceGather{
				Input:         gatherInput,
				Action:        v.action,
				Method:        gatherMethod,
				SpeechTimeout: gatherSpeechTimeout,
				Language:      gatherLanguage,
				InnerElements: []twiml.Element{say(v.text)},
			})
		case verbHangup:
			elems = append(elems, &twiml.VoiceHangup{})
		}
	}
	return twiml.Voice(elems)
}

func say(text string) *twiml.VoiceSay {
	return &twiml.VoiceSay{Message: text, Voice: Voice}
}

// Gathers reports whether the document opens a speech gather.
func (d *Document) Gathers() bool {
	return d.has(verbGather)
}

// HangsUp reports whether the document ends the call.
func (d *Document) HangsUp() bool {
	return d.has(verbHangup)
}

func (d *Document) has(k verbKind) bool {
	for _, v := range d.verbs {
		if v.kind == k {
			return true
		}
	}
	return false
}

// GatherAction returns the callback url of the last gather, or "".
func (d *Document) GatherAction() string {
	action := ""
	for _, v := range d.verbs {
		if v.kind == verbGather {
			action = v.action
		}
	}
	return action
}

// Spoken lists every <Say> text in order, including gather prompts.
func (d *Document) Spoken() []string {
	var out []string
	for _, v := range d.verbs {
		if v.kind == verbSay || v.kind == verbGather {
			out = append(out, v.text)
		}
	}
	return out
}
