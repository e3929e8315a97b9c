package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/rogeonee/recipes/internal/cache"
	"github.com/rogeonee/recipes/internal/norm"
	"github.com/rogeonee/recipes/internal/recipe"
)

var (
	errNotJSON = errors.New("no parseable JSON output")
	errSchema  = errors.New("schema validation failed")
)

const extractSystem = "You read recipe web pages and respond with strict JSON only, no narration and no markdown fences. The JSON schema is {\"title\": string, \"description\": string, \"servings\": int|null, \"servingsText\": string, \"prepMinutes\": int|null, \"cookMinutes\": int|null, \"totalMinutes\": int|null, \"ingredients\": string[], \"steps\": string[], \"notes\": string, \"tags\": string[], \"cuisines\": string[], \"methods\": string[]}. Copy ingredient lines verbatim. Steps are imperative cooking actions in order, without section headings. Use null for unknown numbers and empty strings/arrays for unknown text."

const enrichSystem = "You fill gaps in an already-extracted recipe and respond with strict JSON only, no narration and no markdown fences. The JSON schema is {\"title\": string, \"description\": string, \"servings\": int|null, \"servingsText\": string, \"prepMinutes\": int|null, \"cookMinutes\": int|null, \"totalMinutes\": int|null, \"tags\": string[], \"cuisines\": string[], \"methods\": string[]}. Every field is optional; leave fields empty when the page gives no evidence. Never invent values."

// Usage accumulates token counters across model calls.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	Calls            int
}

// Extractor is the last-resort full extraction and the selective enrichment
// pass. It owns the response cache and the retry/repair loop.
type Extractor struct {
	Client Client
	Model  string
	Cache  *cache.TTLCache

	// MaxAttempts bounds the retry loop, initial attempt included.
	// Zero means 3.
	MaxAttempts int
	// Timeout bounds one model call; retries get double. Zero means 60s.
	Timeout time.Duration
	// ContextChars is the initial page-text budget. Zero means 12000.
	ContextChars int

	mu    sync.Mutex
	usage Usage
}

// Usage returns accumulated token counters.
func (e *Extractor) Usage() Usage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.usage
}

func (e *Extractor) record(u openai.Usage) {
	e.mu.Lock()
	e.usage.PromptTokens += u.PromptTokens
	e.usage.CompletionTokens += u.CompletionTokens
	e.usage.Calls++
	e.mu.Unlock()
}

// Extract asks the model for a full recipe from the reduced page text.
// Any failure, after the attempt budget is spent, surfaces as an error the
// caller treats as "no result from this strategy".
func (e *Extractor) Extract(ctx context.Context, in Input, src recipe.Source) (*recipe.Recipe, error) {
	raw, err := e.run(ctx, "extract", extractSystem, in, func(b []byte) error {
		_, err := parseExtraction(b)
		return err
	})
	if err != nil {
		return nil, err
	}
	payload, err := parseExtraction(raw)
	if err != nil {
		return nil, err
	}
	return e.toRecipe(payload, src)
}

// Enrich fills gaps in an already-normalized recipe. Present fields are
// never overwritten; tags are unioned. The merged record is re-validated.
func (e *Extractor) Enrich(ctx context.Context, base *recipe.Recipe, in Input) (*recipe.Recipe, error) {
	raw, err := e.run(ctx, "enrich", enrichSystem, in, func(b []byte) error {
		_, err := parseEnrichment(b)
		return err
	})
	if err != nil {
		return nil, err
	}
	payload, err := parseEnrichment(raw)
	if err != nil {
		return nil, err
	}
	return mergeEnrichment(base, payload)
}

// run drives the bounded retry loop. Schema failures retry with the
// validator's message as a repair hint; unparseable output retries with a
// shrunken context and a compact-JSON demand; timeouts retry with a longer
// timeout. Provider errors fail fast. The attempt budget covers all modes.
func (e *Extractor) run(ctx context.Context, kind, system string, in Input, validate func([]byte) error) (json.RawMessage, error) {
	if e.Client == nil || strings.TrimSpace(e.Model) == "" {
		return nil, errors.New("llm extractor not configured")
	}
	key := cache.KeyFrom(kind, in.URL, in.HTML)
	if e.Cache != nil {
		if raw, ok := e.Cache.Get(key); ok {
			return raw, nil
		}
	}

	attempts := e.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	budget := e.ContextChars
	if budget <= 0 {
		budget = 12000
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	hint := ""
	var lastErr error
	for i := 0; i < attempts; i++ {
		user := buildUserMessage(in, budget, hint)
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		resp, err := e.Client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: e.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			Temperature: 0.1,
			N:           1,
		})
		timedOut := callCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil
		cancel()
		if err != nil {
			if timedOut || errors.Is(err, context.DeadlineExceeded) {
				if ctx.Err() != nil {
					return nil, err
				}
				lastErr = err
				timeout *= 2
				log.Debug().Str("kind", kind).Int("attempt", i+1).Msg("llm call timed out, retrying with longer timeout")
				continue
			}
			// Provider unavailable or hard API error: fast fail.
			return nil, fmt.Errorf("llm %s call: %w", kind, err)
		}
		e.record(resp.Usage)
		log.Debug().Str("kind", kind).Int("attempt", i+1).
			Int("prompt_tokens", resp.Usage.PromptTokens).
			Int("completion_tokens", resp.Usage.CompletionTokens).
			Msg("llm call complete")

		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			lastErr = errNotJSON
			budget = shrink(budget)
			hint = "Your previous reply had no usable output. Respond with one compact, fully closed JSON object and keep steps short."
			continue
		}
		raw := []byte(stripFences(resp.Choices[0].Message.Content))
		if !json.Valid(raw) {
			lastErr = errNotJSON
			budget = shrink(budget)
			hint = "Your previous reply was not valid JSON. Respond with one compact, fully closed JSON object and keep steps short."
			continue
		}
		if err := validate(raw); err != nil {
			lastErr = err
			hint = "Your previous reply failed validation: " + err.Error() + ". Fix the JSON and try again."
			continue
		}
		if e.Cache != nil {
			e.Cache.Put(key, raw)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("llm %s exhausted after %d attempts: %w", kind, attempts, lastErr)
}

// stripFences removes a markdown code fence around the model's reply, a
// common decoration despite the JSON-only contract.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// toRecipe normalizes an extraction payload through the same text
// normalizers the structured strategies use.
func (e *Extractor) toRecipe(p *extraction, src recipe.Source) (*recipe.Recipe, error) {
	r := &recipe.Recipe{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		Source:      src,
		LLMNotes:    strings.TrimSpace(p.Notes),
	}
	r.Yield = recipe.Yield{Servings: p.Servings, Original: strings.TrimSpace(p.ServingsText)}
	r.Time = recipe.Times{Prep: p.PrepMinutes, Cook: p.CookMinutes, Total: p.TotalMinutes}
	if r.Time.Total == nil && r.Time.Prep != nil && r.Time.Cook != nil {
		if sum := *r.Time.Prep + *r.Time.Cook; sum > 0 {
			r.Time.Total = &sum
		}
	}
	for _, line := range p.Ingredients {
		if ing := norm.ParseIngredientLine(line); ing != nil {
			r.Ingredients = append(r.Ingredients, *ing)
		}
	}
	r.Steps = norm.NormalizeSteps(p.Steps)
	var tags []string
	tags = append(tags, p.Tags...)
	tags = append(tags, p.Cuisines...)
	tags = append(tags, p.Methods...)
	r.Tags = recipe.AddTags(nil, tags...)
	r.Units = norm.InferUnitSystem(r.Ingredients)
	if err := recipe.Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}
