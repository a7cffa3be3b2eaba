package model

// SkillCategory 是一组命名的技能列表。
type SkillCategory struct {
	Name   string
	Skills []string
}

// Profile 是站点主人的静态人设信息。
// 随二进制编译进程序，进程启动后不可变，不需要持久化。
type Profile struct {
	Name           string
	Title          string
	Specialization string
	Email          string
	Phone          string
	LinkedIn       string
	Skills         []SkillCategory
	Interests      []string
	CurrentFocus   []string
}

// AllSkills 返回所有类别拍平后的技能列表，保持类别声明顺序。
func (p Profile) AllSkills() []string {
	var all []string
	for _, category := range p.Skills {
		all = append(all, category.Skills...)
	}
	return all
}

// OwnerProfile 是站点主人的数字分身人设。
var OwnerProfile = Profile{
	Name:           "Renante Misador Marzan",
	Title:          "BSIT-4 Student | Full Stack Developer",
	Specialization: "Website Development & Full Stack Development",
	Email:          "renantemarzan11@gmail.com",
	Phone:          "+63 9662253398",
	LinkedIn:       "https://www.linkedin.com/in/renante-marzan-5245b639a/",
	Skills: []SkillCategory{
		{Name: "Frontend", Skills: []string{"React", "Next.js", "TypeScript", "Tailwind CSS", "Framer Motion"}},
		{Name: "Backend", Skills: []string{"Node.js", "Express", "API Development", "SSR"}},
		{Name: "Database", Skills: []string{"MySQL", "Prisma ORM", "Database Design"}},
		{Name: "AI", Skills: []string{"OpenAI API", "Voice AI", "Chatbot Development"}},
		{Name: "Tools", Skills: []string{"Git", "VS Code", "Vercel", "Modern Dev Tools"}},
	},
	Interests: []string{
		"Web Development",
		"AI Integration",
		"Full Stack Technologies",
		"User Experience Design",
		"Continuous Learning",
	},
	CurrentFocus: []string{
		"Completing BSIT-4 degree",
		"Building advanced web applications",
		"Exploring AI-powered features",
		"Creating innovative full-stack solutions",
	},
}
