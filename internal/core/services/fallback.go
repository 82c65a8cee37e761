package services

import (
	"math/rand"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
)

// Заготовленные ответы на случай недоступности модели, по языкам
var fallbackResponses = map[domain.Language][]string{
	domain.LanguageEnglish: {
		"I understand you may have health concerns, but I'm currently experiencing connectivity issues. Please try again in a few moments. Remember that for any medical emergency, you should contact healthcare professionals directly.",
		"I apologize, but I'm unable to connect to my knowledge base at the moment. For any urgent medical issues, please consult with a healthcare provider directly.",
		"Thanks for your question. Due to technical difficulties, I cannot provide a specific answer right now. For immediate health concerns, please reach out to your doctor or local healthcare facility.",
		"I'm having trouble accessing the latest medical information. For accurate health advice, please consult with qualified medical professionals.",
		"I apologize for the inconvenience, but my service is temporarily unavailable. For health questions, it's always best to consult with healthcare professionals.",
	},
	domain.LanguageSomali: {
		"Waan fahamsanahay inaad qabto walaac caafimaad, laakiin hadda waxaan la kulmayaa dhibaatooyin xiriir. Fadlan isku day daqiiqado yar kadib. Xasuuso in xaalad caafimaad oo degdeg ah, waa inaad si toos ah ula xiriirtaa xirfadlayaasha daryeelka caafimaadka.",
		"Waan ka xumahay, laakiin ma awoodid inaan ku xirnaado saldhigga aqoonteyda hadda. Arrimaha caafimaad ee degdega ah, fadlan la tasho bixiyaha daryeelka caafimaadka si toos ah.",
		"Waad ku mahadsan tahay su'aashaada. Sababtoo ah dhibaatooyinka farsamo, ma bixin karo jawaab gaar ah hadda. Wixii walaac caafimaad oo degdeg ah, fadlan kala xiriir dhakhtarkaaga ama xarunta daryeelka caafimaadka ee degaankaaga.",
		"Waxaan la kulmayaa dhibaato helitaanka macluumaadka caafimaadka ee ugu dambeeyay. Talo caafimaad oo sax ah, fadlan la tasho xirfadlayaasha caafimaadka.",
		"Waan ka xumahay carqaladaynta, laakiin adeegaygu wuu hakad galay si ku meel gaar ah. Su'aalaha caafimaadka, waa marka ugu wanaagsan in la tasho xirfadlayaasha daryeelka caafimaadka.",
	},
}

// FallbackResponse возвращает случайный заготовленный ответ для языка
func FallbackResponse(language domain.Language) string {
	responses, ok := fallbackResponses[language]
	if !ok {
		responses = fallbackResponses[domain.LanguageEnglish]
	}

	return responses[rand.Intn(len(responses))]
}
