package analysis

import (
	"fmt"

	"github.com/wesleyflorence/bookchat/internal/segment"
)

const analysisPrompt = `Analyze the following chapter: %s

Chapter content:
%s

Previous analysis (scratchpad):
%s

Tasks:
1. Write a comprehensive markdown summary of this chapter. Include key ideas, arguments, and any significant examples or case studies.
2. Identify and list potential Zettelkasten notes (atomic ideas) from this chapter. Format each as a brief title followed by a concise explanation.
3. List any authors, books, or papers mentioned in this chapter. If possible, provide full citations.
4. If you identify a key topic (very relevant "proper nouns" such as an animal species, social movement, period of history or person of note) mentioned in the chapter. Create Wikipedia-style markdown links for these, e.g., [topic](https://en.wikipedia.org/wiki/Topic).
5. List any open questions or thoughts for the next chapter.
6. If this chapter appears to be a table of contents, appendix, or references, please note this and provide a brief description instead of a full analysis.
7. Highlight any particularly insightful quotes from the chapter, using proper markdown formatting.

Format your response in markdown, starting with a header for the chapter name, followed by your summary, Zettelkasten notes, references, key topics, questions, and other notes. Use appropriate markdown formatting for sections, lists, and links.

Ensure your analysis is thorough but concise, focusing on the most important and interesting aspects of the chapter.`

const questionPrompt = `You are analyzing the following chapter: %s

Chapter content:
%s

The user has asked the following question about this chapter:
%s

Please provide a clear and concise answer to the user's question, focusing specifically on the content of this chapter. Use markdown formatting for your response.`

func buildAnalysisPrompt(ch segment.ChapterRange, scratchpad string) string {
	return fmt.Sprintf(analysisPrompt, ch.Title, ch.Text, scratchpad)
}

func buildQuestionPrompt(ch segment.ChapterRange, question string) string {
	return fmt.Sprintf(questionPrompt, ch.Title, ch.Text, question)
}
