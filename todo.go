/*
	Project: Katalog - catalog of student projects with peer feedback between teammates.
*/
package katalog

/*
TODO: SQL backed catalog.Repository so added projects and feedback survive restarts.
TODO: replace the demo role selector with real sign-in; the student acting in the student zone comes from config.
TODO: one session.Session per signed-in user instead of the single process wide session.
*/
