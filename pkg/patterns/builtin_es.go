// pkg/patterns/builtin_es.go
package patterns

// Spanish pattern table. Mirrors the English intents one to one; the
// registry refuses to build if an intent is covered in one locale only.
var builtinSpanish = map[string][]string{
	"spending_total": {
		"cuánto gasté este mes",
		"cuanto gaste este mes",
		"cuánto he gastado este mes",
		"qué gasté este mes",
		"gasto total de este mes",
		"muéstrame mis gastos totales",
	},
	"spending_by_category": {
		"cuánto gasté en {category}",
		"cuanto gaste en {category}",
		"cuánto he gastado en {category}",
		"gastos en {category}",
		"gastos de {category} este mes",
	},
	"compare_months": {
		"compara con el mes pasado",
		"compara este mes con el mes pasado",
		"compara * mes pasado",
		"gasto frente al mes pasado",
	},
	"biggest_expense": {
		"cuál fue mi mayor gasto",
		"mayor gasto de este mes",
		"compra más grande de este mes",
		"en qué gasté más",
	},
	"income_total": {
		"cuánto gané este mes",
		"cuál es mi ingreso este mes",
		"ingreso total de este mes",
		"cuánto dinero entró este mes",
	},
	"savings_rate": {
		"cuál es mi tasa de ahorro",
		"cuánto de mi ingreso ahorro",
		"tasa de ahorro de este mes",
	},
	"budget_status": {
		"cómo va mi presupuesto",
		"estoy pasado de presupuesto",
		"estado del presupuesto",
		"cuánto presupuesto me queda",
	},
	"budget_create": {
		"crea un presupuesto de {amount} en {category}",
		"pon un presupuesto en {category}",
		"crear presupuesto de {category}",
	},
	"savings_goal_status": {
		"cómo va mi meta de ahorro",
		"qué tan cerca estoy de mi meta",
		"progreso de mi meta de ahorro",
		"cuándo alcanzaré mi meta",
	},
	"savings_goal_create": {
		"crea una meta de ahorro *",
		"pon una meta de ahorrar {amount}",
		"quiero ahorrar {amount} en {name}",
	},
	"milestone_timeline": {
		"cuándo tendré {amount}",
		"cuánto falta en ahorrar {amount}",
		"cuándo llegará mi ahorro a {amount}",
		"cuánto tardaré en llegar a {amount}",
	},
	"loan_status": {
		"cómo va mi préstamo",
		"cuál es el saldo de mi préstamo",
		"estado del préstamo",
		"cuánto debo todavía",
	},
	"loan_payoff_time": {
		"cuándo terminaré de pagar mi préstamo",
		"cuánto falta en pagar mi préstamo",
		"cuándo quedará pagado mi préstamo",
	},
	"loan_extra_payment": {
		"qué pasa si pago {amount} extra en mi préstamo",
		"qué pasa si pago {amount} adicional al mes",
		"qué pasa si pago extra *",
		"pagar {amount} extra en mi préstamo",
	},
	"debt_overview": {
		"cuánta deuda tengo",
		"muéstrame todas mis deudas",
		"cuáles son mis deudas totales",
		"resumen de deudas",
	},
	"interest_paid": {
		"cuánto interés voy a pagar",
		"interés total de mi préstamo",
		"cuánto interés estoy pagando",
	},
	"investment_projection": {
		"qué pasa si invierto {amount} al mes",
		"cuánto crecerá mi inversión",
		"proyecta mi inversión *",
		"cuánto valdrá mi ahorro en {years} años",
	},
	"affordability_check": {
		"puedo pagar {item}",
		"puedo permitirme gastar {amount}",
		"tengo suficiente dinero en {item}",
	},
	"balance_inquiry": {
		"cuál es mi saldo",
		"cuánto dinero tengo",
		"saldo actual",
	},
	"transaction_search": {
		"busca transacciones de {merchant}",
		"busca en mis transacciones {term}",
		"muéstrame transacciones de {merchant}",
		"cuándo compré {item}",
	},
	"recurring_expenses": {
		"cuáles son mis gastos recurrentes",
		"muestra mis suscripciones",
		"pagos recurrentes",
	},
	"greeting": {
		"hola",
		"buenos días",
		"buenas tardes",
		"hola asistente",
	},
	"help": {
		"ayuda",
		"qué puedes hacer",
		"qué puedo preguntarte",
		"cómo funcionas",
	},
}
