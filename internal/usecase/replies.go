package usecase

// Canned replies for the branches that never reach retrieval or generation.

const emptyQuestionReply = "¡Hola! ¿Qué te gustaría saber de la UVG? Puedo ayudarte con admisiones, carreras, costos, becas y más."

const smalltalkReplyText = "¡Hola! 😊 ¿En qué puedo apoyarte de la UVG?\n\n" +
	"**Puedo ayudarte con:**\n" +
	"- Admisiones y requisitos\n" +
	"- Carreras y planes de estudio\n" +
	"- Costos, becas y formas de pago\n" +
	"- Calendario académico y fechas clave\n" +
	"- Recursos del campus (biblioteca, MakerSpace, laboratorios)\n\n" +
	"Cuéntame qué sede o programa te interesa y avanzamos."

// noContextGuidance replaces an answer that is empty or too terse to be
// useful when retrieval produced nothing to ground on.
const noContextGuidance = "Puedo ayudarte con información de la UVG aunque no encontré pasajes relevantes ahora mismo.\n\n" +
	"**Dime:** sede (Altiplano, Central, Sur) y programa/carrera que te interesa.\n\n" +
	"**Temas comunes:** admisiones, requisitos, costos/becas, calendario, laboratorios, servicios del campus."

// SmalltalkReply returns the short greeting response used for small talk.
func SmalltalkReply() string {
	return smalltalkReplyText
}
