package corpus

// defaultCategories is the built-in academic reference corpus (Portuguese)
var defaultCategories = []Category{
	{
		Name: "machine_learning",
		Sentences: []string{
			"Machine learning é um subcampo da inteligência artificial que permite aos computadores aprender sem serem explicitamente programados.",
			"Os algoritmos de aprendizado de máquina constroem um modelo baseado em dados de treinamento para fazer predições ou decisões.",
			"Deep learning utiliza redes neurais artificiais com múltiplas camadas para modelar e entender dados complexos.",
			"O processamento de linguagem natural combina linguística computacional com modelos estatísticos e de aprendizado de máquina.",
		},
	},
	{
		Name: "inteligencia_artificial",
		Sentences: []string{
			"Inteligência artificial refere-se à capacidade das máquinas de realizar tarefas que normalmente requerem inteligência humana.",
			"IA pode ser classificada como estreita ou geral, sendo que a IA geral ainda não foi alcançada.",
			"Algoritmos de IA são usados em reconhecimento de imagem, processamento de fala e tomada de decisões automatizada.",
			"A ética em IA tornou-se uma preocupação importante devido ao potencial impacto social dessas tecnologias.",
		},
	},
	{
		Name: "programacao",
		Sentences: []string{
			"Python é uma linguagem de programação de alto nível conhecida por sua sintaxe clara e legível.",
			"Estruturas de dados são formas de organizar e armazenar dados de maneira eficiente em programas de computador.",
			"Algoritmos são sequências de instruções bem definidas para resolver problemas computacionais específicos.",
			"A programação orientada a objetos organiza código em classes e objetos para melhor modularidade.",
		},
	},
}

// Default returns the built-in reference corpus
func Default() *Corpus {
	c, err := New(defaultCategories)
	if err != nil {
		// The built-in categories are static and non-empty
		panic("corpus: invalid built-in corpus: " + err.Error())
	}
	return c
}
