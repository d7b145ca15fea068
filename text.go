package main

var (
	HeroTitle   = "Criando experiências digitais que impressionam"
	HeroSubline = `Desenvolvedor Full Stack especializado em criar projetos dinâmicos,
	interativos e exclusivos que deixam uma marca duradoura. Combinando expertise técnica
	com o poder da Inteligência Artificial para desenvolver soluções inovadoras.`

	DeveloperName = "Matheus Godoy"

	AboutMe = `Desenvolvedor Full Stack apaixonado por criar experiências digitais
	inovadoras e interativas. Utilizando tecnologias modernas e inteligência artificial,
	trabalho para transformar ideias em soluções tecnológicas impactantes, combinando
	criatividade humana com as capacidades da IA para entregar resultados excepcionais.`

	ProfileImage = "/images/matheus.png"
	ResumePath   = "/documents/curriculo.pdf"
)

// Fact is one labelled line of the developer summary.
type Fact struct {
	Label string
	Value string
}

var DeveloperFacts = []Fact{
	{"Experiência", "1 ano em desenvolvimento web"},
	{"Especialidades", "React, Next.js, TypeScript, Desenvolvimento Full Stack, Integração com IA"},
	{"Formação", "Análise e Desenvolvimento de Sistemas e Pós-graduando em Inteligência Artificial"},
}

// Skill is a card in the technical skills grid.
type Skill struct {
	Name        string
	Description string
}

var Skills = []Skill{
	{"React/Next.js", "Desenvolvimento de interfaces modernas e responsivas"},
	{"TypeScript", "Código tipado e seguro para aplicações robustas"},
	{"Full Stack", "Desenvolvimento completo front-end e back-end"},
	{"UI/UX", "Design intuitivo com Tailwind CSS"},
	{"IA", "Integração com IA para desenvolvimento ágil"},
}

// NavLink is an in-page navbar anchor.
type NavLink struct {
	Label string
	Href  string
}

var NavLinks = []NavLink{
	{"Projetos", "#projects"},
	{"Desenvolvedor", "#developer"},
	{"Contato", "#contact"},
}

const (
	contactSuccessTitle = "Mensagem enviada!"
	contactSuccessBody  = "Obrigado pelo seu contato. Responderei em breve."
	contactErrorTitle   = "Erro ao enviar mensagem"
	contactErrorBody    = "Por favor, tente novamente mais tarde."
	contactMissingBody  = "Preencha nome, email e mensagem."
	emptyGalleryMessage = "Nenhum projeto encontrado para esta tecnologia."
)
