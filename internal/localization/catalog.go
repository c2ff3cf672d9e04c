package localization

// catalog holds the message templates per key and language. Keys mirror the
// dialogue steps: selection and greeting, the five collection prompts with
// their confirmations, recommendation rendering labels, and the error texts.
var catalog = map[string]map[string]string{
	"language_selection_prompt": {
		"ru": "👋 Привет! Пожалуйста, выберите язык:",
		"en": "👋 Hello! Please select your language:",
		"fr": "👋 Bonjour ! Veuillez sélectionner votre langue :",
	},
	"welcome_language_selected": {
		"ru": "🇷🇺 Отлично! Выбран русский язык.\nЯ твой персональный Travel Bot.\nЧтобы начать планирование, используй команду /plan_trip",
		"en": "🇬🇧 Great! English selected.\nI am your personal Travel Bot.\nTo start planning, use the /plan_trip command.",
		"fr": "🇫🇷 Parfait ! Langue française sélectionnée.\nJe suis votre Travel Bot personnel.\nPour commencer la planification, utilisez la commande /plan_trip",
	},
	"start_planning_prompt": {
		"ru": "Отлично! Начнем планирование вашей идеальной поездки. ✨",
		"en": "Great! Let's start planning your perfect trip. ✨",
		"fr": "Parfait ! Commençons à planifier votre voyage idéal. ✨",
	},
	"step1_location_prompt": {
		"ru": "Шаг 1: Пункт назначения\n📍 Напишите город или страну, куда вы хотите поехать, или отправьте свою геолокацию.",
		"en": "Step 1: Destination\n📍 Write the city or country you want to travel to, or send your current location.",
		"fr": "Étape 1 : Destination\n📍 Écrivez la ville ou le pays où vous souhaitez vous rendre, ou envoyez votre position actuelle.",
	},
	"location_received_text": {
		"ru": "Принято! Вы указали: {location_text}.",
		"en": "Got it! You specified: {location_text}.",
		"fr": "Reçu ! Vous avez spécifié : {location_text}.",
	},
	"location_geo_received_text": {
		"ru": "🌍 Геолокация получена: широта {latitude}, долгота {longitude}.",
		"en": "🌍 Location received: latitude {latitude}, longitude {longitude}.",
		"fr": "🌍 Position reçue : latitude {latitude}, longitude {longitude}.",
	},
	"step2_interests_prompt": {
		"ru": "Шаг 2: Ваши интересы 🎨\nНапишите через запятую, что вас больше всего интересует в поездке. Например: архитектура, природа, гастрономия, история.",
		"en": "Step 2: Your interests 🎨\nWrite, separated by commas, what interests you most on your trip. For example: architecture, nature, gastronomy, history.",
		"fr": "Étape 2 : Vos centres d'intérêt 🎨\nÉcrivez, séparés par des virgules, ce qui vous intéresse le plus. Par exemple : architecture, nature, gastronomie, histoire.",
	},
	"interests_received_text": {
		"ru": "Отлично! Ваши интересы: {interests_text}.",
		"en": "Great! Your interests: {interests_text}.",
		"fr": "Parfait ! Vos centres d'intérêt : {interests_text}.",
	},
	"step3_budget_prompt": {
		"ru": "Шаг 3: Ваш бюджет 💳\nВыберите предполагаемый уровень расходов на поездку:",
		"en": "Step 3: Your budget 💳\nSelect your estimated spending level for the trip:",
		"fr": "Étape 3 : Votre budget 💳\nSélectionnez votre niveau de dépenses estimé :",
	},
	"budget_option_low": {
		"ru": "💰 Эконом (Low)",
		"en": "💰 Economy (Low)",
		"fr": "💰 Économique (Bas)",
	},
	"budget_option_mid": {
		"ru": "💰💰 Средний (Mid)",
		"en": "💰💰 Standard (Mid)",
		"fr": "💰💰 Moyen (Moyen)",
	},
	"budget_option_premium": {
		"ru": "💰💰💰 Премиум (Premium)",
		"en": "💰💰💰 Premium",
		"fr": "💰💰💰 Premium",
	},
	"budget_selected_text": {
		"ru": "Бюджет выбран: {selected_budget}",
		"en": "Budget selected: {selected_budget}",
		"fr": "Budget sélectionné : {selected_budget}",
	},
	"step4_dates_prompt": {
		"ru": "Шаг 4: Даты поездки 📅\nНапишите даты или примерную продолжительность, например: 2025-05-10 to 2025-05-12, или 3 дня.",
		"en": "Step 4: Trip dates 📅\nWrite your dates or an approximate duration, e.g.: 2025-05-10 to 2025-05-12, or 3 days.",
		"fr": "Étape 4 : Dates du voyage 📅\nÉcrivez vos dates ou une durée approximative, par ex. : 2025-05-10 to 2025-05-12, ou 3 jours.",
	},
	"dates_received_text": {
		"ru": "Даты приняты: {dates_text}.",
		"en": "Dates accepted: {dates_text}.",
		"fr": "Dates acceptées : {dates_text}.",
	},
	"step5_transport_prompt": {
		"ru": "Шаг 5: Предпочтения по транспорту 🚶🚗\nНапишите через запятую, какие виды транспорта вы предпочитаете. Например: пешком, автомобиль, общественный транспорт.",
		"en": "Step 5: Transport preferences 🚶🚗\nWrite, separated by commas, which types of transport you prefer. For example: walking, car, public transport.",
		"fr": "Étape 5 : Préférences de transport 🚶🚗\nÉcrivez, séparés par des virgules, les transports que vous préférez. Par exemple : à pied, voiture, transports en commun.",
	},
	"transport_received_text": {
		"ru": "Предпочтения по транспорту приняты: {transport_text}.",
		"en": "Transport preferences accepted: {transport_text}.",
		"fr": "Préférences de transport acceptées : {transport_text}.",
	},
	"all_data_collected_prompt": {
		"ru": "🎉 Отлично! Вы предоставили всю основную информацию!\nПодбираю для вас лучшие варианты... Это может занять несколько секунд ✨",
		"en": "🎉 Great! You have provided all the basic information!\nFinding the best options for you... This may take a few seconds ✨",
		"fr": "🎉 Parfait ! Vous avez fourni toutes les informations !\nRecherche des meilleures options pour vous... Cela peut prendre quelques secondes ✨",
	},
	"button_book_tickets": {
		"ru": "🔗 Бронь/Билеты",
		"en": "🔗 Book/Tickets",
		"fr": "🔗 Réserver/Billets",
	},
	"button_on_map": {
		"ru": "🗺️ На карте",
		"en": "🗺️ On Map",
		"fr": "🗺️ Sur la carte",
	},
	"button_like": {
		"ru": "👍 Нравится",
		"en": "👍 Like",
		"fr": "👍 J'aime",
	},
	"button_dislike": {
		"ru": "👎 Не нравится",
		"en": "👎 Dislike",
		"fr": "👎 Je n'aime pas",
	},
	"button_more_options": {
		"ru": "➕ Показать еще",
		"en": "➕ Show more",
		"fr": "➕ Afficher plus",
	},
	"feedback_saved_text": {
		"ru": "Спасибо за оценку!",
		"en": "Thanks for your feedback!",
		"fr": "Merci pour votre avis !",
	},
	"text_no_name": {
		"ru": "Без названия",
		"en": "No Name",
		"fr": "Sans Nom",
	},
	"text_address": {
		"ru": "Адрес",
		"en": "Address",
		"fr": "Adresse",
	},
	"text_distance_time": {
		"ru": "Расстояние/Время",
		"en": "Distance/Time",
		"fr": "Distance/Temps",
	},
	"text_price": {
		"ru": "Цена",
		"en": "Price",
		"fr": "Prix",
	},
	"text_rating": {
		"ru": "Рейтинг",
		"en": "Rating",
		"fr": "Évaluation",
	},
	"text_opening_hours": {
		"ru": "Часы работы",
		"en": "Opening Hours",
		"fr": "Horaires d'ouverture",
	},
	"ai_response_error_text": {
		"ru": "К сожалению, не удалось получить рекомендации от AI. Попробуйте позже.",
		"en": "Sorry, couldn't get recommendations from AI. Please try again later.",
		"fr": "Désolé, impossible d'obtenir des recommandations de l'IA. Veuillez réessayer plus tard.",
	},
	"ai_json_decode_error_text": {
		"ru": "AI вернул некорректный JSON. Пожалуйста, попробуйте еще раз. (Отладка: {error_details})",
		"en": "AI returned invalid JSON. Please try again. (Debug: {error_details})",
		"fr": "L'IA a renvoyé un JSON non valide. Veuillez réessayer. (Débogage : {error_details})",
	},
	"ai_unexpected_format_text": {
		"ru": "AI вернул данные в неожиданном формате. Пожалуйста, сообщите разработчику.",
		"en": "AI returned data in an unexpected format. Please inform the developer.",
		"fr": "L'IA a renvoyé des données dans un format inattendu. Veuillez informer le développeur.",
	},
	"no_recommendations_found_text": {
		"ru": "По вашему запросу ничего не нашлось. Попробуйте изменить критерии и начать заново с /plan_trip.",
		"en": "Nothing matched your request. Try adjusting your criteria and start again with /plan_trip.",
		"fr": "Rien ne correspond à votre demande. Modifiez vos critères et recommencez avec /plan_trip.",
	},
	"no_new_recommendations_text": {
		"ru": "Новых вариантов больше нет — все найденные рекомендации вы уже видели.",
		"en": "No new options left — you have already seen everything that was found.",
		"fr": "Plus de nouvelles options — vous avez déjà vu tout ce qui a été trouvé.",
	},
	"state_lost_error_text": {
		"ru": "Данные вашей сессии планирования утеряны. Пожалуйста, начните заново с команды /plan_trip.",
		"en": "Your planning session data was lost. Please start again with /plan_trip.",
		"fr": "Les données de votre session de planification ont été perdues. Veuillez recommencer avec /plan_trip.",
	},
}
