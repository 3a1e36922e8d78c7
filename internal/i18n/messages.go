package i18n

import "github.com/m3rciful/coursebot/internal/domain"

// catalog keys keep the original storefront naming. Entries with fmt verbs
// note the argument order in a trailing comment.
var catalog = map[string]domain.LocalizedText{
	// Language selection.
	"welcome_prompt_language": {
		QR: "Assalawma aleykum! Til tańlań: \nAssalomu alaykum! Tilni tanlang:",
		UZ: "Assalomu alaykum! Tilni tanlang:",
	},
	"language_chosen_button": {
		QR: "Qaraqalpaqsha",
		UZ: "O‘zbekcha",
	},
	"language_selected": {
		QR: "Til saylandı",
		UZ: "Til tanlandi",
	},

	// Onboarding and contact capture.
	"welcome_after_lang": {
		QR: "🎓 Kurs satıp alıw ushın mo'lsherlengen botqa xosh kelipsiz!\n\n" +
			"Men sizge qolaylı kurstı tańlaw hám satıp alıwǵa járdem beremen.\n" +
			"Baslaw ushın telefon nomerińizdi jiberiń.",
		UZ: "🎓 Kurs sotib olish uchun mo‘ljallangan botga xush kelibsiz!\n\n" +
			"Men sizga qulay kursni tanlash va sotib olishda yordam beraman.\n" +
			"Boshlash uchun telefon raqamingizni yuboring.",
	},
	"request_contact_button": {
		QR: "📱 Nomerdi jiberiw",
		UZ: "📱 Raqamni yuborish",
	},
	"contact_saved": {
		QR: "✅ Raxmet! Telefon nomerińiz saqlandı.\n\nEndi siz kurstı tańlay alasız:",
		UZ: "✅ Rahmat! Telefon raqamingiz saqlandi.\n\nEndi siz kursni tanlashingiz mumkin:",
	},
	"returning_to_main_menu": {
		QR: "🏠 Bas menyuǵa qaytıp atırmız.",
		UZ: "🏠 Bosh menyuga qaytmoqdamiz.",
	},

	// Main menu.
	"main_menu_title": {
		QR: "🏠 <b>Bas menyu</b>",
		UZ: "🏠 <b>Bosh menyu</b>",
	},
	"courses_button": {
		QR: "📚 Kurslar",
		UZ: "📚 Kurslar",
	},
	"about_button": {
		QR: "ℹ️ Biz haqqımızda",
		UZ: "ℹ️ Biz haqimizda",
	},
	"support_button": {
		QR: "📞 Qollap-quwatlaw",
		UZ: "📞 Qo‘llab-quvvatlash",
	},

	// Course list.
	"courses_list_title": {
		QR: "📚 <b>Kurslar:</b>\n\nTolıq maǵlıwmat alıw hám satıp alıw ushın kurstı tańlań:",
		UZ: "📚 <b>Kurslar:</b>\n\nTo‘liq ma’lumot olish va sotib olish uchun kursni tanlang:",
	},
	"no_courses_yet": {
		QR: "😔 Házirshe kurslar joq.\nKeyinirek urınıp kóriń.",
		UZ: "😔 Hozircha kurslar mavjud emas.\nKeyinroq urinib ko‘ring.",
	},
	"back_to_menu_button": {
		QR: "🏠 Bas menyu",
		UZ: "🏠 Bosh menyu",
	},

	// Course details.
	"course_details_header": { // %s name, %s description
		QR: "📚 <b>%s</b>\n\n%s\n\n",
		UZ: "📚 <b>%s</b>\n\n%s\n\n",
	},
	"price_label": {
		QR: "💰 Bahası:",
		UZ: "💰 Narxi:",
	},
	"discount_label": { // %d percent
		QR: "🔥 <b>(-%d%%)</b>\n\n",
		UZ: "🔥 <b>(-%d%%)</b>\n\n",
	},
	"old_price_label": { // %d old price, %d price
		QR: "<s>%d</s> <b>%d sum</b>",
		UZ: "<s>%d</s> <b>%d so‘m</b>",
	},
	"current_price_label": { // %d price
		QR: "<b>%d sum</b>\n\n",
		UZ: "<b>%d so‘m</b>\n\n",
	},
	"taken_slots": { // %d taken, %d max
		QR: "👥 Bánt orınlar: %d/%d\n",
		UZ: "👥 Band o‘rinlar: %d/%d\n",
	},
	"no_slots_left": {
		QR: "❌ <b>Orınlar qalmadi</b>\n\n",
		UZ: "❌ <b>O‘rinlar qolmadi</b>\n\n",
	},
	"free_slots": { // %d free
		QR: "✅ Bos orınlar: %d\n\n",
		UZ: "✅ Bo‘sh o‘rinlar: %d\n\n",
	},
	"buy_button": { // %d price
		QR: "💳 %d sum-ǵa satıp alıw",
		UZ: "💳 %d so‘mga sotib olish",
	},
	"back_to_courses_button": {
		QR: "◀️ Kurslar dizimine",
		UZ: "◀️ Kurslar ro‘yxatiga",
	},

	// Purchase flow.
	"course_not_available": {
		QR: "❌ Ókinishke oray, bul kurs endi qoljetimli emes.",
		UZ: "❌ Afsuski, bu kurs endi mavjud emas.",
	},
	"already_bought_course": { // %s name, %s group link
		QR: "✅ Siz \"%s\" kursın satıp alıp bolǵansız.\n\nGruppaǵa silteme: %s",
		UZ: "✅ Siz \"%s\" kursini sotib olib bo‘lgansiz.\n\nGuruhga havola: %s",
	},
	"payment_already_pending": { // %s name, %s status
		QR: "⏳ Sizde \"%s\" kursın satıp alıw ushın arza bar.\nStatusı: %s\n\nAdministratordıń tekseriwin kútiń.",
		UZ: "⏳ Sizda \"%s\" kursini sotib olish uchun ariza mavjud.\nHolati: %s\n\nAdministratorning tekshiruvini kuting.",
	},
	"no_payment_methods_available": {
		QR: "❌ Ókinishke oray, házir tólemniń qoljetimli usılları joq.\nQollap-quwatlaw xızmetine múrájat etiń.",
		UZ: "❌ Afsuski, hozir to‘lovning mavjud usullari yo‘q.\nQo‘llab-quvvatlash xizmatiga murojaat qiling.",
	},
	"select_payment_method_title": { // %s name, %d price
		QR: "💳 <b>Kurs satıp alıw: %s</b>\n\n💰 Bahası: <b>%d sum</b>\n\nTólem usılın tańlań:",
		UZ: "💳 <b>Kurs sotib olish: %s</b>\n\n💰 Narxi: <b>%d so‘m</b>\n\nTo‘lov usulini tanlang:",
	},
	"back_button": {
		QR: "◀️ Artqa",
		UZ: "◀️ Orqaga",
	},
	"cancel_button": {
		QR: "❌ Biykar etiw",
		UZ: "❌ Bekor qilish",
	},

	// Payment requisites and receipt upload.
	"payment_details_title": { // %s name
		QR: "💳 <b>Kurs tólemi: %s</b>\n\n",
		UZ: "💳 <b>Kurs to‘lovi: %s</b>\n\n",
	},
	"amount_to_pay": { // %d price
		QR: "💰 Tólem ushın summa: <b>%d sum</b>\n\n",
		UZ: "💰 To‘lov uchun summa: <b>%d so‘m</b>\n\n",
	},
	"payment_requisites": {
		QR: "📋 <b>Tólem ushın rekvizitler:</b>\n\n",
		UZ: "📋 <b>To‘lov uchun rekvizitlar:</b>\n\n",
	},
	"important_note": {
		QR: "\n\n⚠️ <b>Áhmiyetli:</b>\n",
		UZ: "\n\n⚠️ <b>Muhim:</b>\n",
	},
	"important_note_1": { // %d price
		QR: "• Anıq <b>%d sum</b> ótkeriwiz kerek\n",
		UZ: "• Aniq <b>%d so‘m</b> o‘tkazishingiz kerak\n",
	},
	"important_note_2": {
		QR: "• Tólemnen keyin chektiń skrinshotın jiberiń\n",
		UZ: "• To‘lovdan keyin chek skrinshotini yuboring\n",
	},
	"important_note_3": {
		QR: "• Administrator tólemdi tekseredi hám gruppa siltemesin jiberedi\n\n",
		UZ: "• Administrator to‘lovni tekshiradi va guruh havolasini yuboradi\n\n",
	},
	"send_receipt_prompt": {
		QR: "📸 Chektiń skrinshotın yamasa PDF hújjetin jiberiń:",
		UZ: "📸 Chek skrinshotini yoki PDF hujjatini yuboring:",
	},
	"cancel_purchase_button": {
		QR: "❌ Satıp alıwdı biykarlaw",
		UZ: "❌ Xaridni bekor qilish",
	},
	"purchase_cancelled": {
		QR: "❌ Satıp alıw biykar etildi.\n\nSiz basqa kurs tańlawıńız yamasa keyinirek qaytıwıńız múmkin.",
		UZ: "❌ Xarid bekor qilindi.\n\nSiz boshqa kurs tanlashingiz yoki keyinroq qaytishingiz mumkin.",
	},
	"cancel_pending_payment_button": {
		QR: "🚫 Tólemdi biykarlaw",
		UZ: "🚫 To‘lovni bekor qilish",
	},
	"pending_payment_cancelled": {
		QR: "🚫 Tólem biykar etildi.\n\nKurstı qaytadan satıp alıwıńız múmkin.",
		UZ: "🚫 To‘lov bekor qilindi.\n\nKursni qaytadan sotib olishingiz mumkin.",
	},
	"payment_already_resolved": {
		QR: "⚠️ Bul tólem alleqashan qaralǵan.",
		UZ: "⚠️ Bu to‘lov allaqachon ko‘rib chiqilgan.",
	},

	// Receipt acknowledgement.
	"receipt_accepted_photo": {
		QR: "✅ <b>Chek qabıllandı!</b>\n\n",
		UZ: "✅ <b>Chek qabul qilindi!</b>\n\n",
	},
	"receipt_accepted_document": {
		QR: "✅ <b>Hújjet qabıllandı!</b>\n\n",
		UZ: "✅ <b>Hujjat qabul qilindi!</b>\n\n",
	},
	"course_label":         {QR: "📚 Kurs:", UZ: "📚 Kurs:"},
	"amount_label":         {QR: "💰 Summa:", UZ: "💰 Summa:"},
	"payment_method_label": {QR: "💳 Tólem usılı:", UZ: "💳 To‘lov usuli:"},
	"file_label":           {QR: "📄 Fayl:", UZ: "📄 Fayl:"},
	"payment_pending_admin_review": {
		QR: "\n⏳ Siziń tólemińiz administratorǵa tekseriw ushın jiberildi.\n" +
			"Ádette tekseriw 2 saatqa shekem waqıt aladı.\n\n" +
			"Tastıyıqlanǵannan keyin siz kurs gruppasına silteme alasız.",
		UZ: "\n⏳ Sizning to‘lovingiz administratorga tekshiruv uchun yuborildi.\n" +
			"Odatda tekshiruv 2 soatgacha vaqt oladi.\n\n" +
			"Tasdiqlangandan keyin siz kurs guruhiga havola olasiz.",
	},

	// Payment outcome.
	"payment_approved_title": {
		QR: "✅ <b>Tólem tastıyıqlandı!</b>\n\n",
		UZ: "✅ <b>To‘lov tasdiqlandi!</b>\n\n",
	},
	"congratulations_on_purchase": {
		QR: "🎉 Satıp alıwıńız benen qutlıqlaymız!\n\n",
		UZ: "🎉 Xaridingiz bilan tabriklaymiz!\n\n",
	},
	"group_link_message": { // %s group link
		QR: "🔗 <b>Kurs gruppasına silteme:</b>\n%s\n\n",
		UZ: "🔗 <b>Kurs guruhiga havola:</b>\n%s\n\n",
	},
	"join_group_and_start": {
		QR: "Gruppaǵa qosılıń hám oqıwdı baslań!\nEger sorawlarıńız bolsa, qollap-quwatlaw xızmetine múrájat etiń.",
		UZ: "Guruhga qo‘shiling va o‘qishni boshlang!\nAgar savollaringiz bo‘lsa, qo‘llab-quvvatlash xizmatiga murojaat qiling.",
	},
	"other_courses_button": {
		QR: "📚 Basqa kurslar",
		UZ: "📚 Boshqa kurslar",
	},
	"payment_rejected_title": {
		QR: "❌ <b>Tólem biykar etildi</b>\n\n",
		UZ: "❌ <b>To‘lov bekor qilindi</b>\n\n",
	},
	"payment_rejected_body": {
		QR: "Ókinishke oray, siziń tólemińiz tekseriwden ótpedi.\n\n",
		UZ: "Afsuski, sizning to‘lovingiz tekshiruvdan o‘tmadi.\n\n",
	},
	"admin_comment_message": { // %s comment
		QR: "💬 <b>Administrator kommentariyi:</b>\n%s\n\n",
		UZ: "💬 <b>Administrator izohi:</b>\n%s\n\n",
	},
	"if_questions_contact_support": {
		QR: "Eger sorawlarıńız bolsa, qollap-quwatlaw xızmetine múrájat etiń.\nSiz taǵı bir márte tólewge urınıp kóriwińizge boladı.",
		UZ: "Agar savollaringiz bo‘lsa, qo‘llab-quvvatlash xizmatiga murojaat qiling.\nSiz yana bir bor to‘lashga urinib ko‘rishingiz mumkin.",
	},
	"retry_payment_button": {
		QR: "🔄 Qaytadan urınıp kóriw",
		UZ: "🔄 Qaytadan urinib ko‘rish",
	},

	// Requisite labels.
	"payment_method_card_number": {
		QR: "Karta nomeri:",
		UZ: "Karta raqami:",
	},
	"payment_method_cardholder": {
		QR: "Qabıllawshı:",
		UZ: "Qabul qiluvchi:",
	},
	"payment_method_bank": {
		QR: "Bank:",
		UZ: "Bank:",
	},
	"payment_method_instructions": {
		QR: "\nInstrukciya:",
		UZ: "\nInstruksiya:",
	},

	// Help.
	"help_text": {
		QR: "🤖 <b>Járdem</b>\n\n" +
			"Qoljetimli buyrıqlar:\n" +
			"/start - Bot penen islewdi baslaw\n" +
			"/help - Usı kórsetpeni kórsetiw\n" +
			"/cancel - Bas menyuǵa qaytıw\n\n" +
			"Navigaciya ushın túymelerden paydalanıń.\n\n" +
			"📚 <b>Kurs qalay satıp alınadı:</b>\n" +
			"1. \"📚 Kurslar\" di tańlań\n" +
			"2. Qızıqtırǵan kurstı tańlań\n" +
			"3. \"💳 Satıp alıw\" di basıń\n" +
			"4. Tólem usılın tańlań\n" +
			"5. Rekvizitler boyınsha tóleń\n" +
			"6. Chek skrinshotın jiberiń\n" +
			"7. Tastıyıqlanıwın kútiń\n\n" +
			"Qanday da bir másele payda bolsa, qollap-quwatlaw xızmetine múrájat etiń.",
		UZ: "🤖 <b>Yordam</b>\n\n" +
			"Mavjud buyruqlar:\n" +
			"/start - Bot bilan ishlashni boshlash\n" +
			"/help - Ushbu yo‘riqnomani ko‘rsatish\n" +
			"/cancel - Bosh menyuga qaytish\n\n" +
			"Navigatsiya uchun tugmalardan foydalaning.\n\n" +
			"📚 <b>Kurs qanday sotib olinadi:</b>\n" +
			"1. \"📚 Kurslar\"ni tanlang\n" +
			"2. Qiziqtirgan kursni tanlang\n" +
			"3. \"💳 Sotib olish\"ni bosing\n" +
			"4. To‘lov usulini tanlang\n" +
			"5. Rekvizitlar bo‘yicha to‘lang\n" +
			"6. Chek skrinshotini yuboring\n" +
			"7. Tasdiqlanishini kuting\n\n" +
			"Biror muammo paydo bo‘lsa, qo‘llab-quvvatlash xizmatiga murojaat qiling.",
	},

	// Errors.
	"error_start_command": {
		QR: "Qátelik júz berdi. /start buyrıǵın qaytadan teriń",
		UZ: "Xatolik yuz berdi. /start buyrug‘ini qaytadan tering",
	},
	"error_not_your_contact": {
		QR: "❌ Ótinish, tek óz telefon nomerińizdi jiberiń.",
		UZ: "❌ Iltimos, faqat o‘z telefon raqamingizni yuboring.",
	},
	"error_contact_save": {
		QR: "Kontaktıńızdı saqlawda qátelik júz berdi. Qaytadan urınıp kóriń.",
		UZ: "Kontaktni saqlashda xatolik yuz berdi. Qaytadan urinib ko‘ring.",
	},
	"info_not_found": {
		QR: "Maǵlıwmat tabılmadı.",
		UZ: "Ma’lumot topilmadi.",
	},
	"support_info_not_found": {
		QR: "Qollap-quwatlaw haqqında maǵlıwmat tabılmadı.",
		UZ: "Qo‘llab-quvvatlash haqida ma’lumot topilmadi.",
	},
	"error_loading_course_details": {
		QR: "Kurs haqqında maǵlıwmat júklewde qátelik júz berdi.",
		UZ: "Kurs haqida ma’lumot yuklashda xatolik yuz berdi.",
	},
	"error_loading_courses": {
		QR: "Kurslardı júklewde qátelik júz berdi.",
		UZ: "Kurslarni yuklashda xatolik yuz berdi.",
	},
	"error_buy_course": {
		QR: "Satıp alıwdı rásmiylestiriwde qátelik júz berdi.",
		UZ: "Sotib olishni rasmiylashtirishda xatolik yuz berdi.",
	},
	"error_payment_method_selection": {
		QR: "Tólem usılın tańlawda qátelik júz berdi.",
		UZ: "To‘lov usulini tanlashda xatolik yuz berdi.",
	},
	"error_purchase_data_lost": {
		QR: "❌ Qátelik: satıp alıw haqqında maǵlıwmatlar joǵalǵan. Qaytadan baslań.",
		UZ: "❌ Xatolik: sotib olish haqida ma’lumotlar yo‘qolgan. Qaytadan boshlang.",
	},
	"error_photo_not_found": {
		QR: "❌ Foto tabılmadı. Qaytadan urınıp kóriń.",
		UZ: "❌ Fotosurat topilmadi. Qaytadan urinib ko‘ring.",
	},
	"error_photo_download": {
		QR: "❌ Fotanı júklep alıw múmkin bolmadı. Qaytadan urınıp kóriń.",
		UZ: "❌ Fotosuratni yuklab olish mumkin bo‘lmadi. Qaytadan urinib ko‘ring.",
	},
	"error_document_not_found": {
		QR: "❌ Hújjet tabılmadı. Qaytadan urınıp kóriń.",
		UZ: "❌ Hujjat topilmadi. Qaytadan urinib ko‘ring.",
	},
	"error_file_too_large": {
		QR: "❌ Fayl júdá úlken. Maksimum 10 MB.",
		UZ: "❌ Fayl juda katta. Maksimum 10 MB.",
	},
	"error_unsupported_format": {
		QR: "❌ Qollap-quwatlanbaytuǵın format. PDF, JPG yamasa PNG formatlarınan paydalanıń.",
		UZ: "❌ Qo‘llab-quvvatlanmaydigan format. PDF, JPG yoki PNG formatlaridan foydalaning.",
	},
	"error_file_download": {
		QR: "❌ Fayldı júklep alıw múmkin bolmadı. Qaytadan urınıp kóriń.",
		UZ: "❌ Faylni yuklab olish mumkin bo‘lmadi. Qaytadan urinib ko‘ring.",
	},
	"error_payment_save": {
		QR: "❌ Tólemdi saqlawda qátelik júz berdi. Qaytadan urınıp kóriń.",
		UZ: "❌ To‘lovni saqlashda xatolik yuz berdi. Qaytadan urinib ko‘ring.",
	},
	"error_processing_receipt": {
		QR: "Chekti qayta islewde qátelik júz berdi.",
		UZ: "Chekni qayta ishlashda xatolik yuz berdi.",
	},
	"error_processing_document": {
		QR: "Hújjet qayta islewde qátelik júz berdi.",
		UZ: "Hujjatni qayta ishlashda xatolik yuz berdi.",
	},

	// Media outside the purchase flow.
	"photo_received_outside_payment": {
		QR: "📸 Men siziń fotońızdı aldım.\n\n" +
			"Eger siz kurs tólemi haqqında chekti jiberiwdi qáleseńiz, " +
			"dáslep kurstı tańlap, \"💳 Satıp alıw\" túymesin basıń.",
		UZ: "📸 Men sizning fotosuratingizni oldim.\n\n" +
			"Agar siz kurs to‘lovi haqida chek yubormoqchi bo‘lsangiz, " +
			"avval kursni tanlab, \"💳 Sotib olish\" tugmasini bosing.",
	},
	"document_received_outside_payment": {
		QR: "📄 Men siziń hújjetińizdi aldım.\n\n" +
			"Eger siz kurs tólemi haqqında chekti jiberiwdi qáleseńiz, " +
			"dáslep kurstı tańlap, \"💳 Satıp alıw\" túymesin basıń.",
		UZ: "📄 Men sizning hujjatingizni oldim.\n\n" +
			"Agar siz kurs to‘lovi haqida chek yubormoqchi bo‘lsangiz, " +
			"avval kursni tanlab, \"💳 Sotib olish\" tugmasini bosing.",
	},
}
