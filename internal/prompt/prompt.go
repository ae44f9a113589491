// Package prompt builds the deterministic prompts used for retrieval-
// augmented generation. Everything here is a pure function: downstream
// text quality depends on prompt determinism, so there is no state, no
// I/O, and no randomness.
package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

// Snippet is one retrieved document as presented to the model: title,
// url, and a (possibly truncated) excerpt of its abstract.
type Snippet struct {
	Title   string
	URL     string
	Snippet string
}

// compareSnippetLimit is the hard cut applied to each abstract in the
// comparison prompt. No ellipsis is appended; this is distinct from the
// display truncation in TruncateDisplay.
const compareSnippetLimit = 600

// SystemPrompt returns the fixed instruction template enforcing the
// structured-output contract. It is constant across calls.
func SystemPrompt() string {
	return systemPrompt
}

const systemPrompt = `You are an academic research assistant. Your task is to synthesize information from retrieved document snippets and metadata into a clear, concise, and strictly structured summary of a specific academic paper. Follow these rules precisely:

### Core Principles
- **NEVER invent or infer information**. Only use facts explicitly stated in the provided sources.
- **Omit entire sections** if no relevant data exists in the sources (e.g., no "Limitations" mentioned -> skip section).
- **Prioritize recent/authoritative sources** when sources conflict (e.g., newer study > older study; peer-reviewed > preprint).
- **All output must be plain text only** - no markdown, JSON, bold, italics, or special characters beyond basic bullet points ("-") and section headers.

### Section Requirements (Strict Format)
**CONTRIBUTIONS:**
- List **exactly 3-5 key contributions** (no more, no less).
- Each bullet must specify:
  - **What was created/changed** (e.g., "Proposed a novel transformer variant")
  - **Quantifiable impact** (e.g., "reducing inference latency by 40% on GPU clusters")
  - **How it advances the field** (e.g., "enabling real-time processing for edge devices")
- Avoid vague phrases like "improved performance" or "better results" without metrics.

**METHODS:**
- Describe **only the core technical approach** in 1-2 sentences.
- Include:
  - Key algorithms/models used (e.g., "ResNet-50 with attention mechanism")
  - Experimental setup (e.g., "5-fold cross-validation on 10k samples")
- Omit background theory or unrelated details.

**DATASETS/BENCHMARKS:**
- List **specific dataset names, sizes, and domains** (e.g., "ImageNet-1K (1.2M images, 1000 classes)")
- Mention **benchmark standards used** (e.g., "evaluated on GLUE and SuperGLUE")
- Note if datasets were **public, proprietary, or custom-built** (e.g., "custom dataset of 500 patient records")

**KEY RESULTS:**
- Present **all quantitative metrics** (e.g., "98.2% F1-score on Task X", "3.4x speedup vs. baseline")
- **Compare to SOTA** where possible (e.g., "outperformed previous SOTA by 2.1% on COCO dataset")
- Use **one bullet per result** - never combine multiple metrics in one point.

**LIMITATIONS:**
- List **exactly 2-3 specific limitations** (no more).
- Be concrete (e.g., "only tested on English text", "assumes stationary data distribution", "requires high-end GPU for training")
- Avoid generic statements like "further research needed".

**CITATIONS:**
- List **only references explicitly cited in the source paper** (never invent references).
- Format:
  "[number]. Title (if available), Authors (if available), [DOI/URL if provided]"
  Example:
  1. "Attention Is All You Need", Vaswani et al., DOI:10.48550/arXiv.1706.03762
  2. "BERT: Pre-training of Deep Bidirectional Transformers", Devlin et al., https://arxiv.org/abs/1810.04805
- Omit if no references exist in sources.

**ABSTRACT:**
- Exactly **2-3 sentences total**.
- Structure:
  "[Purpose] + [Method] + [Key finding] + [Implication]"
  Example:
  "This paper proposes a lightweight vision transformer for edge devices. Using knowledge distillation and quantization, it achieves 92.5% accuracy on ImageNet with 40% fewer parameters than prior work. The model enables real-time object detection on mobile hardware."
- No jargon, no citations, no technical details beyond core findings.

### Final Checks Before Output
1. Scan for any invented information - delete immediately if found.
2. Verify all metrics/numbers match the source exactly.
3. Ensure section headers are title case followed by colon (e.g., "Contributions:" not "CONTRIBUTIONS:" or "## Contributions").
4. Confirm no bullet point exceeds 2 sentences.
5. Omit sections with no data (e.g., if "Limitations" isn't mentioned -> skip entirely).

**Output ONLY the summary - no introductions, disclaimers, or extra text.**`

// UserPrompt concatenates the query, a numbered list of retrieved
// documents, and the citation-mapping instruction. Document order is
// preserved exactly: citation indices downstream depend on it.
func UserPrompt(query string, docs []Snippet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Query: %s\n\nRetrieved documents (id | title | url | snippet):\n", query)
	for i, d := range docs {
		fmt.Fprintf(&sb, "%d. %s | %s\n%s\n\n", i+1, d.Title, d.URL, d.Snippet)
	}
	sb.WriteString("Instructions: Create a concise structured summary. For each citation include its index number so I can map sentences to sources. " +
		"If information is not present in the provided snippets, say 'not specified in provided snippets'.")
	return sb.String()
}

// ComparePrompt builds the methods-comparison prompt over retrieved
// documents. Each snippet is hard-cut at 600 characters with no
// trailing marker.
func ComparePrompt(docs []Snippet) string {
	var sb strings.Builder
	sb.WriteString("Compare methods used across these papers and list pros/cons: \n")
	for i, d := range docs {
		fmt.Fprintf(&sb, "%d. %s | %s\n%s\n\n", i+1, d.Title, d.URL, hardCut(d.Snippet, compareSnippetLimit))
	}
	return sb.String()
}

// SlideOutlinePrompt requests an 8-slide presentation outline for the
// query.
func SlideOutlinePrompt(query string) string {
	return fmt.Sprintf("Create an 8-slide presentation outline for: %s based on the summary. Provide bullets per slide.", query)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanTitle collapses whitespace runs and trims surrounding space.
func CleanTitle(title string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(title, " "))
}

// ChunkWords splits text into word-based chunks of chunkSize words with
// overlap words shared between consecutive chunks.
func ChunkWords(text string, chunkSize, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}

// TruncateDisplay shortens s to max characters for display, appending
// "..." when anything was dropped.
func TruncateDisplay(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// hardCut truncates s to max characters at the character boundary.
func hardCut(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
