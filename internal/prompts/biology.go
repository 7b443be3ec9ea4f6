package prompts

var biologyTemplates = map[typeDifficulty]Template{
	{TypeMCQ, DifficultyEasy}: {
		Description:  "Biology MCQ, direct recall",
		OutputSchema: mcqOutputSchema,
		Rules: `## QUESTION TYPE: MULTIPLE CHOICE (EASY)

Create simple, direct recall questions from the document:
- Ask about a single fact, definition, or term stated in the document
- Question stem is one short sentence
- Options are short terms or phrases from the document (MAX 7 WORDS each)
- Exactly one option is correct; the other three are plausible terms from the same topic
- Do NOT combine multiple statements in one question

Example stems:
- "Which of the following is the site of photosynthesis?"
- "The term 'X' refers to which of the following?"`,
	},
	{TypeMCQ, DifficultyMedium}: {
		Description:  "Biology MCQ, understanding and application",
		OutputSchema: mcqOutputSchema,
		Rules: `## QUESTION TYPE: MULTIPLE CHOICE (MEDIUM)

Create questions that test understanding of processes and relationships in the document:
- Ask about how or why a process works, as described in the document
- May use an "Identify the correct statement" format with 2-3 statements, each on its own line using \n
- Options are short phrases (MAX 7 WORDS each)
- Distractors must be drawn from related content in the document, not invented`,
	},
	{TypeMCQ, DifficultyHard}: {
		Description:  "Biology MCQ, multi-statement analysis",
		OutputSchema: mcqOutputSchema,
		Rules: `## QUESTION TYPE: MULTIPLE CHOICE (HARD)

Create multi-statement analysis questions:
- Present 3-4 numbered statements from the document, each on its own line using \n:
  (1) [statement]
  (2) [statement]
  (3) [statement]
- Ask which statements are correct
- Options are combinations like "(1) and (3) only", "(2) and (4) only", "All of these"
- At least one statement must be subtly incorrect (a fact altered from the document)
- Every statement must be verifiable against the document text`,
	},

	{TypeAssertionReason, DifficultyEasy}: {
		Description:  "Biology assertion-reason, direct facts",
		OutputSchema: arOutputSchema,
		Rules: arRulesCommon + `
Difficulty EASY:
- Both Assertion and Reason are direct statements from the document
- The causal link (or its absence) is explicitly stated in the document
- Prefer correct_answer "a" or "c" patterns that are easy to verify`,
	},
	{TypeAssertionReason, DifficultyMedium}: {
		Description:  "Biology assertion-reason, related concepts",
		OutputSchema: arOutputSchema,
		Rules: arRulesCommon + `
Difficulty MEDIUM:
- Assertion and Reason come from the same topic but different sentences
- Include cases where both are true but the Reason does not explain the Assertion (answer "b")
- Mix all four answer patterns across the question set`,
	},
	{TypeAssertionReason, DifficultyHard}: {
		Description:  "Biology assertion-reason, subtle distinctions",
		OutputSchema: arOutputSchema,
		Rules: arRulesCommon + `
Difficulty HARD:
- Use subtle alterations: one of the two statements contains a small factual change from the document
- The relationship between Assertion and Reason requires careful reading to judge
- Spread all four answer patterns across the question set; do not favor "a"`,
	},

	{TypeMatchTheColumn, DifficultyEasy}: {
		Description:  "Biology match the column, term-definition pairs",
		OutputSchema: mtcOutputSchema,
		Rules: mtcRulesCommon + `
Difficulty EASY:
- List I items are terms; List II items are their definitions or functions, both from the document
- Pairings are stated directly in the document`,
	},
	{TypeMatchTheColumn, DifficultyMedium}: {
		Description:  "Biology match the column, process-structure pairs",
		OutputSchema: mtcOutputSchema,
		Rules: mtcRulesCommon + `
Difficulty MEDIUM:
- Pair structures with processes, or causes with effects, as described in the document
- Items in List II must be plausible matches for more than one List I item`,
	},
	{TypeMatchTheColumn, DifficultyHard}: {
		Description:  "Biology match the column, cross-topic pairs",
		OutputSchema: mtcOutputSchema,
		Rules: mtcRulesCommon + `
Difficulty HARD:
- Draw List I and List II items from different sections of the document
- Matches require combining two stated facts
- Distractor options must differ from the correct option in at least two pairings`,
	},
}

const arRulesCommon = `## QUESTION TYPE: ASSERTION-REASON

Each question has two labeled statements:
- "Assertion (A): [statement]" then a blank line then "Reason (R): [statement]"
- Both statements must be complete sentences grounded in the document

The four options are ALWAYS exactly:
a) Both Assertion and Reason are true and Reason is the correct explanation of Assertion
b) Both Assertion and Reason are true but Reason is NOT the correct explanation of Assertion
c) Assertion is true but Reason is false
d) Assertion is false but Reason is true
`

const mtcRulesCommon = `## QUESTION TYPE: MATCH THE COLUMN

Each question presents two lists to be matched:
- List I has exactly 4 items labeled A, B, C, D
- List II has exactly 4 items labeled I, II, III, IV
- Present the lists as a pipe table, one row per line using \n
- Options are complete mappings like "A-IV, B-I, C-III, D-II"
- All four options must be DISTINCT mappings; exactly one is fully correct
- Never use the sequential mapping "A-I, B-II, C-III, D-IV" as the correct answer
- List II order must be scrambled relative to List I
`
