package prompts

var chemistryTemplates = map[typeDifficulty]Template{
	{TypeMCQ, DifficultyEasy}: {
		Description:  "Chemistry MCQ, direct recall",
		OutputSchema: mcqOutputSchema,
		Rules: `## QUESTION TYPE: MULTIPLE CHOICE (EASY)

Create simple, direct recall questions from the document:
- Ask about a single fact, definition, formula, or named reaction stated in the document
- Question stem is one short sentence
- Options are short terms, formulas, or values from the document (MAX 7 WORDS each)
- Write all formulas in LaTeX: $H_2SO_4$, $Fe^{2+}$, $sp^3$
- Exactly one option is correct`,
	},
	{TypeMCQ, DifficultyMedium}: {
		Description:  "Chemistry MCQ, reactions and trends",
		OutputSchema: mcqOutputSchema,
		Rules: `## QUESTION TYPE: MULTIPLE CHOICE (MEDIUM)

Create questions about reactions, periodic trends, and properties described in the document:
- Ask about products, conditions, or ordering as stated in the document
- Ordering questions use options like "$Li < Na < K$" built only from document data
- Options are short phrases or formulas (MAX 7 WORDS each)
- Write all chemical species in LaTeX: $CO_2$, $NH_4^+$, $\Delta H$`,
	},
	{TypeMCQ, DifficultyHard}: {
		Description:  "Chemistry MCQ, multi-statement analysis",
		OutputSchema: mcqOutputSchema,
		Rules: `## QUESTION TYPE: MULTIPLE CHOICE (HARD)

Create multi-statement analysis questions:
- Present 3-4 numbered statements from the document, each on its own line using \n:
  (1) [statement]
  (2) [statement]
  (3) [statement]
- Ask which statements are correct
- Options are combinations like "(1) and (3) only", "(2) and (4) only", "All of these"
- At least one statement must be subtly incorrect (a changed formula, condition, or value)
- Write all chemical notation in LaTeX`,
	},

	{TypeAssertionReason, DifficultyEasy}: {
		Description:  "Chemistry assertion-reason, direct facts",
		OutputSchema: arOutputSchema,
		Rules: arRulesCommon + `
Difficulty EASY:
- Both Assertion and Reason are direct statements from the document
- The causal link (or its absence) is explicitly stated in the document
- Write all chemical notation in LaTeX`,
	},
	{TypeAssertionReason, DifficultyMedium}: {
		Description:  "Chemistry assertion-reason, related concepts",
		OutputSchema: arOutputSchema,
		Rules: arRulesCommon + `
Difficulty MEDIUM:
- Assertion and Reason come from the same topic but different sentences
- Include cases where both are true but the Reason does not explain the Assertion (answer "b")
- Mix all four answer patterns across the question set
- Write all chemical notation in LaTeX`,
	},
	{TypeAssertionReason, DifficultyHard}: {
		Description:  "Chemistry assertion-reason, subtle distinctions",
		OutputSchema: arOutputSchema,
		Rules: arRulesCommon + `
Difficulty HARD:
- One of the two statements contains a small factual change from the document (a swapped condition, an altered value, a wrong species)
- Judging the relationship requires careful reading of the document
- Spread all four answer patterns across the question set; do not favor "a"
- Write all chemical notation in LaTeX`,
	},

	{TypeMatchTheColumn, DifficultyEasy}: {
		Description:  "Chemistry match the column, compound-property pairs",
		OutputSchema: mtcOutputSchema,
		Rules: mtcRulesCommon + `
Difficulty EASY:
- List I items are compounds or terms; List II items are their properties or uses, both from the document
- Pairings are stated directly in the document
- Write all formulas in LaTeX`,
	},
	{TypeMatchTheColumn, DifficultyMedium}: {
		Description:  "Chemistry match the column, reaction-product pairs",
		OutputSchema: mtcOutputSchema,
		Rules: mtcRulesCommon + `
Difficulty MEDIUM:
- Pair reactants with products, or species with their roles, as described in the document
- Items in List II must be plausible matches for more than one List I item
- Write all formulas in LaTeX`,
	},
	{TypeMatchTheColumn, DifficultyHard}: {
		Description:  "Chemistry match the column, cross-topic pairs",
		OutputSchema: mtcOutputSchema,
		Rules: mtcRulesCommon + `
Difficulty HARD:
- Draw List I and List II items from different sections of the document
- Matches require combining two stated facts
- Distractor options must differ from the correct option in at least two pairings
- Write all formulas in LaTeX`,
	},
}
