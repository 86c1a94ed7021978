package horoscope

import (
	"fmt"
	"time"

	"github.com/lunara/astro-api/internal/astro"
)

// FallbackDailyTransits is the hand-authored payload served when neither a
// live nor a cached daily computation is available. The product never shows
// an empty or error state for this feature.
func FallbackDailyTransits() DailyTransits {
	return DailyTransits{
		Date: "",
		Sun: SunToday{
			Sign:    astro.Scorpio,
			Message: "O Sol em Scorpio ilumina temas de transformação e autenticidade.",
		},
		Moon: MoonToday{
			Sign:    astro.Pisces,
			Phase:   astro.WaxingCrescent,
			Message: "A Lua Crescente em Pisces traz energia de crescimento e ação.",
		},
		DailyEnergy: "Os astros se alinham para trazer clareza e renovação. É um dia para se conectar com sua essência e abraçar as transformações.",
		Advices: []string{
			"A energia de hoje pede introspecção. Reserve um momento para ouvir sua voz interior.",
			"Os trânsitos favorecem novas conexões. Esteja aberto ao inesperado.",
			"Momento propício para cuidar do corpo e da mente. Pratique autocuidado.",
		},
	}
}

// FallbackTransitInsights is the static transit list used when enrichment
// and cache are both unavailable. Positions are plausible samples, not
// computed values.
func FallbackTransitInsights(now time.Time) TransitInsights {
	const dateLayout = "2006-01-02"
	window := func(planet astro.Planet, sign astro.Sign, retro bool, degree, startOff, endOff int, lifeArea, message, advice string) astro.TransitWindow {
		return astro.TransitWindow{
			Planet:     planet.Label(),
			Icon:       planet.Icon(),
			Sign:       sign,
			Retrograde: retro,
			Degree:     degreeString(degree),
			StartDate:  now.AddDate(0, 0, startOff).Format(dateLayout),
			EndDate:    now.AddDate(0, 0, endOff).Format(dateLayout),
			Element:    astro.ElementOf(sign),
			LifeArea:   lifeArea,
			Message:    message,
			Advice:     advice,
		}
	}

	fallback := FallbackDailyTransits()
	return TransitInsights{
		Date:  now,
		Daily: Daily{Sun: fallback.Sun, Moon: fallback.Moon},
		Transits: []astro.TransitWindow{
			window(astro.Mercury, astro.Sagittarius, false, 12, 0, 20, "comunicacao",
				"Mercúrio em Sagittarius expande conversas e ideias.",
				"Diga o que pensa, mas escolha o momento com cuidado."),
			window(astro.Venus, astro.Libra, false, 8, 0, 25, "relacionamentos",
				"Vênus em Libra favorece harmonia nos vínculos.",
				"Dedique tempo de qualidade a quem você ama."),
			window(astro.Mars, astro.Capricorn, false, 21, 0, 45, "carreira",
				"Marte em Capricorn dá disciplina às suas ambições.",
				"Avance um passo concreto no projeto mais importante."),
			window(astro.Jupiter, astro.Gemini, true, 18, -60, 90, "autoconhecimento",
				"Júpiter retrógrado em Gemini convida à revisão de crenças.",
				"Releia antigas anotações e atualize seus planos."),
			window(astro.Saturn, astro.Pisces, false, 2, -90, 120, "espiritualidade",
				"Saturno em Pisces estrutura sua vida interior.",
				"Crie uma pequena rotina diária de silêncio ou meditação."),
		},
	}
}

func degreeString(d int) string {
	return fmt.Sprintf("%d°", d)
}
