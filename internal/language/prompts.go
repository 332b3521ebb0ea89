package language

const NormalizePrompt = `
You are the LANGUAGE NORMALIZER stage.

You receive JSON:

{"message": "..."}

1. Detect the language of message (e.g. English, Urdu, Spanish).
2. Translate message to English. Keep every number and currency sign exactly as written.

Answer strictly with JSON, no text outside it:

{"detected_language": "Urdu", "english_query": "How much for a website?"}
`

const localizePromptTemplate = `
You are the LOCALIZER stage.

Translate the user's text into %s.
Keep the prices and numbers exactly the same.
Maintain a professional tone.
Answer with the translated text only.
`
