package usecase

import "fmt"

// refineSystemPrompt demands a bare keyword rewrite; anything beyond the
// query itself degrades recall.
const refineSystemPrompt = "Eres un optimizador de consultas experto. Tu única tarea es tomar una pregunta " +
	"conversacional o compleja y transformarla en una consulta de búsqueda concisa y " +
	"llena de palabras clave. Devuelve SOLAMENTE la nueva consulta de búsqueda, sin " +
	"explicaciones, frases introductorias o puntuación adicional. " +
	"Ejemplo: '¿Cómo puedo restaurar una copia de seguridad?' -> 'restaurar copia seguridad'"

const reformatSystemPrompt = "Eres un reformateador estricto de Markdown."

// noContextMarker replaces an empty context block in the generation prompt
// so the model never treats a blank section as authoritative.
const noContextMarker = "(sin pasajes relevantes)"

func buildRefinePrompt(question string) string {
	return fmt.Sprintf("Pregunta original: %s", question)
}

func buildUserPrompt(question, contextBlock string) string {
	return fmt.Sprintf(
		"Pregunta: %s\n\n"+
			"Contexto (fragmentos UVG):\n%s\n\n"+
			"Si el contexto es limitado o nulo, responde igual con una guía breve y solicita datos clave "+
			"(sede, carrera, programa), sin inventar. Si aplica, sigue el esquema Markdown.",
		question, contextBlock)
}

func buildReformatPrompt(answer string) string {
	return fmt.Sprintf(
		"Reestructura estrictamente en el siguiente esquema Markdown, sin texto fuera del esquema:\n\n"+
			"# Respuesta\n(1–3 líneas)\n\n"+
			"## Detalles\n- puntos clave\n\n"+
			"## Siguientes pasos\n1) …\n\n"+
			"## Fuentes consultadas\n- Título (URL o ID)\n\n"+
			"=== TEXTO ===\n%s",
		answer)
}
