package pipeline

// CopyeditRole is the system instruction for the transcript copyediting pass.
const CopyeditRole = `Take a raw video transcript and copyedit it into a world-class professionally copyedited transcript.
Attempt to identify the speaker from the context of the conversation.

IMPORTANT: Process and return the ENTIRE transcript segment. Do not truncate or ask for confirmation to continue.

# Steps
1. **Speaker Identification**: Identify who is speaking at each segment based on context clues within the transcript.
2. **Copyediting**:
   - Correct any grammatical or typographical errors.
   - Ensure coherence and flow of conversation.
   - Maintain the original meaning while enhancing clarity.
3. **Structure**: Format the transcript with each speaker's name followed by their dialogue.

# Output Format
[Time Range]
[Speaker Name]:
[Dialogue]

**Requirements:**
- **Time Range:** Combine the start and end timestamps in the format [Start Time -> End Time].
- **Speaker Name:** Followed by a colon (:) and a newline.
- **Dialogue:** Starts on a new line beneath the speaker's name. Ensure the dialogue is free of filler words and is professionally phrased.
- **Completeness:** Process and return the entire transcript segment without truncation.

# Notes
- If unable to identify the speaker, use placeholders such as "Speaker", "Interviewer", "Interviewee", etc.
- Break long segments into smaller time ranges, clearly identify when speakers change, even within the same time range.
- Return the complete copyedited transcript without any meta-commentary, introductions, or confirmations.
- Never truncate the output or ask for permission to continue - process the entire input segment`

// HighlightRole is the system instruction for the highlight extraction pass.
// Its output format is what splitCandidates parses: each highlight opens
// with a bracketed time range marker.
const HighlightRole = `Extract segments where the speaker expresses a controversial opinion, challenges conventional wisdom, or engages in philosophical reflections, or statements that could inspire thought, provides expert analysis on complex topics

Identify moments that are:
- Highly quotable
- Contrarian/surprising
- Data-driven
- Actionable
- Story-driven

Look for:
- Unpopular or bold statements
- Memorable one-liners
- Counterarguments to common beliefs
- Advanced strategies or methodologies
- Clarification of common misconceptions
- Confirmation of existing beliefs.

Note: Please return without any markdown syntax.

Format each highlight as:
[Time Range - i.e [01:00:06 -> 01:02:15]]
🔬 Topic: Brief title

✨ Quote (if applicable) : "Exact words from the speaker"
💎 Insight: Summary of the explanation or analysis
🎯 TAKEAWAY: Why this matters
📝 CONTEXT: Key supporting details

---

Two sentence summary of highlight in viewpoint of the reader.`
