package litsense

// ChunksByWordCount partitions tokens into consecutive, non-overlapping chunks
// of size words. The last chunk may be shorter.
func ChunksByWordCount(tokens []string, size int) ([]Chunk, error) {
	if size < 1 {
		return nil, ErrInvalidChunkSize
	}
	if len(tokens) == 0 {
		return []Chunk{}, nil
	}

	count := (len(tokens) + size - 1) / size
	chunks := make([]Chunk, 0, count)
	for i := 0; i < count; i++ {
		start := i * size
		end := min(start+size, len(tokens))
		chunks = append(chunks, Chunk{
			Index:    i,
			Tokens:   tokens[start:end:end],
			Position: float64(i) / float64(count),
		})
	}
	return chunks, nil
}

// Chunker cuts text into the units the scorers work on.
type Chunker struct {
	processor TextProcessor
}

// NewChunker returns a Chunker backed by processor.
func NewChunker(processor TextProcessor) *Chunker {
	return &Chunker{processor: processor}
}

// Sentences returns the sentences of text in document order.
func (c *Chunker) Sentences(text string) ([]string, error) {
	sents, err := c.processor.SplitSentences(text)
	if err != nil {
		return nil, collaboratorFailure("sentence splitter", err)
	}
	return sents, nil
}

// Words returns fixed-size word chunks of text.
func (c *Chunker) Words(text string, size int) ([]Chunk, error) {
	if size < 1 {
		return nil, ErrInvalidChunkSize
	}
	words, err := c.processor.SplitWords(text)
	if err != nil {
		return nil, collaboratorFailure("word tokenizer", err)
	}
	return ChunksByWordCount(words, size)
}
